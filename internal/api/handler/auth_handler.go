package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/api/metrics"
	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email       string                   `json:"email" validate:"required,email"`
	Name        string                   `json:"name" validate:"required"`
	Password    string                   `json:"password" validate:"required,min=8"`
	Role        string                   `json:"role" validate:"required"`
	Permissions []domain.PermissionEntry `json:"permissions,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type authData struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  failureResponse
// @Failure      409   {object}  failureResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Name:        req.Name,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ok("account created", authData{User: user}))
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  failureResponse
// @Failure      429   {object}  failureResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, ok("login successful", authData{Token: token, User: user}))
}

// Me returns the authenticated principal with its effective permission set.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Failure      401  {object}  failureResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("", principal))
}

// ChangePassword updates the authenticated user's password. Wired behind the
// sensitive-operation rate limiter.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Password change"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  failureResponse
// @Failure      429   {object}  failureResponse
// @Router       /auth/password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ok("password updated", nil))
}
