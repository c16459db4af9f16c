package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopkeeper/shopkeeper-api/internal/core/domain"
	"github.com/shopkeeper/shopkeeper-api/internal/core/ports"
)

// ResourceHandler serves reads and deletes for the guarded domain
// collections. It runs strictly downstream of the permission and ownership
// gates, so by the time a request lands here it is already authorized; the
// handler's only job is fetching or removing the document.
type ResourceHandler struct {
	registry ports.ResourceRegistry
}

func NewResourceHandler(registry ports.ResourceRegistry) *ResourceHandler {
	return &ResourceHandler{registry: registry}
}

// Get returns a handler serving GET /<resource>/:id.
func (h *ResourceHandler) Get(resource domain.ResourceType) echo.HandlerFunc {
	return func(c echo.Context) error {
		store, okStore := h.registry.Resolve(resource)
		if !okStore {
			return echo.NewHTTPError(http.StatusInternalServerError, "unknown resource type")
		}

		doc, err := store.FindByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, ok("", doc))
	}
}

// Delete returns a handler serving DELETE /<resource>/:id.
func (h *ResourceHandler) Delete(resource domain.ResourceType) echo.HandlerFunc {
	return func(c echo.Context) error {
		store, okStore := h.registry.Resolve(resource)
		if !okStore {
			return echo.NewHTTPError(http.StatusInternalServerError, "unknown resource type")
		}

		if err := store.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, ok(string(resource)+" deleted", nil))
	}
}
