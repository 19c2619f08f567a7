package controller

import (
	"errors"
	"io"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/middleware"
	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/api/response"
	"ctchen222/rehla/internal/api/service"

	"github.com/gin-gonic/gin"
)

var errBadJSON = apperror.New(apperror.KindValidation, "Invalid request body")

// UserController handles the authentication endpoints.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Register handles the user registration endpoint.
func (uc *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	resp, err := uc.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.CreatedResponse(c, resp)
}

// Login handles the user login endpoint.
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	resp, err := uc.userService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessResponse(c, resp)
}

// Me returns the authenticated user.
func (uc *UserController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrAuthRequired)
		return
	}

	response.SuccessResponse(c, models.MeResponse{User: user.Public()})
}

// bindJSON decodes the body into v. An empty body leaves v zeroed so the
// field validation reports what is missing.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return errBadJSON
	}
	return nil
}
