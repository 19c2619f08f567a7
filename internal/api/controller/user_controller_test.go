package controller

import (
	"net/http"
	"testing"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/models"
	"ctchen222/rehla/internal/api/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newUserRouter(t *testing.T, user *models.User) (*gin.Engine, *mocks.MockUserService) {
	svc := mocks.NewMockUserService(gomock.NewController(t))
	uc := NewUserController(svc)

	r := gin.New()
	r.POST("/api/auth/register", uc.Register)
	r.POST("/api/auth/login", uc.Login)
	r.GET("/api/auth/me", asUser(user), uc.Me)
	return r, svc
}

func TestRegisterEndpoint(t *testing.T) {
	r, svc := newUserRouter(t, nil)

	svc.EXPECT().
		Register(gomock.Any(), &models.RegisterRequest{Name: "Layla", Email: "layla@example.com", Password: "secret1"}).
		Return(&models.AuthResponse{Message: "Registration successful", Token: "tok", User: testUser.Public()}, nil)

	w := serve(r, jsonRequest(http.MethodPost, "/api/auth/register",
		`{"name":"Layla","email":"layla@example.com","password":"secret1"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"message": "Registration successful",
		"token": "tok",
		"user": {"id": "u-1", "name": "Layla", "email": "layla@example.com"}
	}`, w.Body.String())
}

func TestRegisterEndpoint_Errors(t *testing.T) {
	r, svc := newUserRouter(t, nil)

	svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrDuplicateEmail)
	w := serve(r, jsonRequest(http.MethodPost, "/api/auth/register", `{"name":"Dup","email":"d@x.io","password":"secret1"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	decodeBody(t, w, &body)
	assert.Equal(t, "Email already registered", body.Message)

	w = serve(r, jsonRequest(http.MethodPost, "/api/auth/register", `{"name":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decodeBody(t, w, &body)
	assert.Equal(t, "Invalid request body", body.Message)
}

func TestRegisterEndpoint_EmptyBodyIsValidated(t *testing.T) {
	r, svc := newUserRouter(t, nil)

	svc.EXPECT().Register(gomock.Any(), &models.RegisterRequest{}).
		Return(nil, apperror.Validation("name", "Name must be at least 2 characters"))

	w := serve(r, jsonRequest(http.MethodPost, "/api/auth/register", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body errorBody
	decodeBody(t, w, &body)
	assert.Equal(t, "Name must be at least 2 characters", body.Message)
	assert.Equal(t, map[string]string{"name": "Name must be at least 2 characters"}, body.Errors)
}

func TestLoginEndpoint(t *testing.T) {
	r, svc := newUserRouter(t, nil)

	svc.EXPECT().Login(gomock.Any(), &models.LoginRequest{Email: "layla@example.com", Password: "secret1"}).
		Return(&models.AuthResponse{Token: "tok", User: testUser.Public()}, nil)
	svc.EXPECT().Login(gomock.Any(), &models.LoginRequest{Email: "layla@example.com", Password: "wrong"}).
		Return(nil, apperror.ErrInvalidCredentials)

	w := serve(r, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"layla@example.com","password":"secret1"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.AuthResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "tok", resp.Token)

	w = serve(r, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"layla@example.com","password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body errorBody
	decodeBody(t, w, &body)
	assert.Equal(t, "Invalid email or password", body.Message)
}

func TestMeEndpoint(t *testing.T) {
	r, _ := newUserRouter(t, testUser)

	w := serve(r, jsonRequest(http.MethodGet, "/api/auth/me", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":{"id":"u-1","name":"Layla","email":"layla@example.com"}}`, w.Body.String())
}
