package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/api/middleware"
)

// StorefrontHandler serves the public catalog summary. It sits behind
// OptionalAuth: anonymous requests get the plain catalog, authenticated ones
// get a personalized greeting. A bad or expired token never blocks.
type StorefrontHandler struct{}

func NewStorefrontHandler() *StorefrontHandler {
	return &StorefrontHandler{}
}

type catalogData struct {
	Catalog string `json:"catalog"`
	Viewer  string `json:"viewer,omitempty"`
}

func (h *StorefrontHandler) Catalog(c echo.Context) error {
	data := catalogData{Catalog: "shopkeeper-public"}
	if principal, okP := middleware.PrincipalFrom(c); okP {
		data.Viewer = principal.Name
	}
	return c.JSON(http.StatusOK, ok("", data))
}
