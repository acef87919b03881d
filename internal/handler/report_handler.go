package handler

import (
	"net/http"

	"tienda/internal/config"
	"tienda/internal/middleware"
	"tienda/internal/repository"
	"tienda/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, staffRepo repository.StaffRepository) {
	g := e.Group("/reports")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffActiveGuard(staffRepo))

	g.GET("/summary", h.summary)
}

func (h *ReportHandler) summary(c echo.Context) error {
	out, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
