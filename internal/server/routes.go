package server

import (
	"tienda/internal/config"
	"tienda/internal/handler"
	"tienda/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers はルートを持つhandlerをまとめたもの。
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Sale     *handler.SaleHandler
	Order    *handler.OrderHandler
	Report   *handler.ReportHandler
	Audit    *handler.AuditHandler
}

// /auth以外はJWT + 稼働中スタッフのみ。削除と監査ログはADMIN。
func RegisterRoutes(e *echo.Echo, cfg config.Config, staffRepo repository.StaffRepository, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Customer.RegisterRoutes(e, cfg, staffRepo)
	h.Product.RegisterRoutes(e, cfg, staffRepo)
	h.Sale.RegisterRoutes(e, cfg, staffRepo)
	h.Order.RegisterRoutes(e, cfg, staffRepo)
	h.Report.RegisterRoutes(e, cfg, staffRepo)
	h.Audit.RegisterRoutes(e, cfg, staffRepo)
}
