package handler

import (
	"net/http"

	"tienda/internal/config"
	"tienda/internal/middleware"
	"tienda/internal/repository"
	"tienda/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type SaleHandler struct {
	uc *usecase.SaleUsecase
}

func NewSaleHandler(uc *usecase.SaleUsecase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

type SaleItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// customer_idはnullなら顧客なし
type SaleCreateRequest struct {
	CustomerID *int64            `json:"customer_id"`
	Total      decimal.Decimal   `json:"total"`
	Items      []SaleItemRequest `json:"items"`
}

func (h *SaleHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, staffRepo repository.StaffRepository) {
	g := e.Group("/sales")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffActiveGuard(staffRepo))

	g.GET("", h.list)
	g.POST("", h.create)
}

func (h *SaleHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SaleHandler) create(c echo.Context) error {
	var req SaleCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.CreateSaleInput{
		CustomerID: req.CustomerID,
		Total:      req.Total,
		Items:      make([]usecase.SaleItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	created, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}
