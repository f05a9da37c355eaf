package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/musitech/crm-api/internal/core/ports"
)

type StatusHandler struct {
	statusService ports.StatusService
}

func NewStatusHandler(statusService ports.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

type statusCreateRequest struct {
	ClientName string `json:"client_name" validate:"required"`
}

// Create records a status check.
//
// @Summary      Create a status check
// @Tags         status
// @Accept       json
// @Produce      json
// @Param        body  body      statusCreateRequest  true  "Status check"
// @Success      200   {object}  domain.StatusCheck
// @Failure      400   {object}  map[string]string
// @Router       /api/status [post]
func (h *StatusHandler) Create(c echo.Context) error {
	var req statusCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sc, err := h.statusService.Create(c.Request().Context(), req.ClientName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc)
}

// List returns recorded status checks, capped at 1000.
//
// @Summary      List status checks
// @Tags         status
// @Produce      json
// @Success      200  {array}  domain.StatusCheck
// @Router       /api/status [get]
func (h *StatusHandler) List(c echo.Context) error {
	checks, err := h.statusService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checks)
}
