// Package server assembles the gin engine of the Rehla API.
package server

import (
	"log/slog"
	"net/http"

	"ctchen222/rehla/internal/api/controller"
	"ctchen222/rehla/internal/api/middleware"
	"ctchen222/rehla/internal/api/response"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options configures the engine.
type Options struct {
	Logger             *slog.Logger
	AllowedOrigins     []string
	MaxRequestBodySize int64
	// UploadDir is served under /uploads when non-empty.
	UploadDir string
}

// Controllers groups the handlers mounted on the engine.
type Controllers struct {
	User        *controller.UserController
	Story       *controller.StoryController
	Destination *controller.DestinationController
	Health      *controller.HealthController
}

type Server struct {
	engine *gin.Engine
}

// NewServer builds the engine and registers every route.
func NewServer(opts Options, ctrls Controllers, authn *middleware.Authenticator) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = false
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(middleware.DefaultCORSConfig(opts.AllowedOrigins)),
		middleware.BodyLimit(opts.MaxRequestBodySize),
	)

	s := &Server{engine: engine}
	s.registerRoutes(ctrls, authn, opts.UploadDir)
	return s
}

func (s *Server) registerRoutes(ctrls Controllers, authn *middleware.Authenticator, uploadDir string) {
	r := s.engine

	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	api := r.Group("/api")
	api.GET("/health", ctrls.Health.Health)
	api.GET("/ready", ctrls.Health.Ready)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", ctrls.User.Register)
	authGroup.POST("/login", ctrls.User.Login)
	authGroup.GET("/me", authn.RequireAuth(), ctrls.User.Me)

	stories := api.Group("/stories")
	stories.GET("", authn.OptionalAuth(), ctrls.Story.List)
	stories.POST("", authn.RequireAuth(), ctrls.Story.Create)
	stories.PUT("/:id", authn.RequireAuth(), ctrls.Story.Update)
	stories.DELETE("/:id", authn.RequireAuth(), ctrls.Story.Delete)

	destinations := api.Group("/destinations")
	destinations.GET("", ctrls.Destination.List)
	destinations.GET("/preview", ctrls.Destination.Preview)

	r.NoRoute(func(c *gin.Context) {
		response.ErrorResponse(c, http.StatusNotFound, "Not found")
	})
}

// Engine returns the bare gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handler returns the engine wrapped with OpenTelemetry HTTP instrumentation.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, "rehla-api",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
