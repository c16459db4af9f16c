package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// IntegrationHandler receives machine-to-machine inventory sync pushes. The
// route is gated by the static API key, not the JWT flow.
type IntegrationHandler struct {
	logger zerolog.Logger
}

func NewIntegrationHandler(logger zerolog.Logger) *IntegrationHandler {
	return &IntegrationHandler{logger: logger}
}

type inventorySyncRequest struct {
	Source string `json:"source" validate:"required"`
	Items  []struct {
		SKU      string `json:"sku" validate:"required"`
		Quantity int    `json:"quantity"`
	} `json:"items" validate:"required,min=1,dive"`
}

// InventorySync accepts a batch of stock-level updates from an external
// system and acknowledges receipt.
func (h *IntegrationHandler) InventorySync(c echo.Context) error {
	var req inventorySyncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.logger.Info().
		Str("source", req.Source).
		Int("items", len(req.Items)).
		Msg("inventory sync received")

	return c.JSON(http.StatusAccepted, ok("sync accepted", map[string]int{"received": len(req.Items)}))
}
