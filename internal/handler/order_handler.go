package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"tienda/internal/config"
	"tienda/internal/middleware"
	"tienda/internal/repository"
	"tienda/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// 数量は入力欄の文字列をそのまま渡す。2 でも "2" でも受けて、判定はusecase側。
type rawQuantity string

func (q *rawQuantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = rawQuantity(s)
		return nil
	}
	*q = rawQuantity(data)
	return nil
}

type DraftItemAddRequest struct {
	ProductID int64       `json:"product_id"`
	Quantity  rawQuantity `json:"quantity"`
}

type DraftItemRemoveRequest struct {
	LineIDs []int `json:"line_ids"`
}

// customer_id: null で選択解除
type DraftCustomerRequest struct {
	CustomerID *int64 `json:"customer_id"`
}

// totalは画面に出していた合計（任意）
type DraftConfirmRequest struct {
	Total *decimal.Decimal `json:"total"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, staffRepo repository.StaffRepository) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.StaffActiveGuard(staffRepo))

	//作成中の注文（スタッフごと）
	g.GET("/draft", h.getDraft)
	g.DELETE("/draft", h.resetDraft)
	g.POST("/draft/items", h.addItem)
	g.DELETE("/draft/items", h.removeItems)
	g.PUT("/draft/customer", h.selectCustomer)
	g.POST("/draft/confirm", h.confirm)

	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) getDraft(c echo.Context) error {
	staffID, ok := getStaffIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetDraft(c.Request().Context(), staffID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) resetDraft(c echo.Context) error {
	staffID, ok := getStaffIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ResetDraft(c.Request().Context(), staffID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) addItem(c echo.Context) error {
	staffID, ok := getStaffIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req DraftItemAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), staffID, usecase.AddDraftItemInput{
		ProductID: req.ProductID,
		Quantity:  string(req.Quantity),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) removeItems(c echo.Context) error {
	staffID, ok := getStaffIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req DraftItemRemoveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.RemoveItems(c.Request().Context(), staffID, req.LineIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) selectCustomer(c echo.Context) error {
	staffID, ok := getStaffIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req DraftCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SelectCustomer(c.Request().Context(), staffID, req.CustomerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) confirm(c echo.Context) error {
	staffID, ok := getStaffIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req DraftConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.ConfirmDraft(c.Request().Context(), staffID, usecase.ConfirmDraftInput{Total: req.Total})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
