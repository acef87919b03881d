package usecase

import (
	"context"
	"net/http"

	repo "tienda/internal/repository"
)

// ランキングの件数
const reportTopN = 5

type ReportUsecase struct {
	reports           repo.ReportRepository
	lowStockThreshold int64
}

func NewReportUsecase(reports repo.ReportRepository, lowStockThreshold int64) *ReportUsecase {
	return &ReportUsecase{reports: reports, lowStockThreshold: lowStockThreshold}
}

type ReportSummary struct {
	Sales             repo.CountAndSum         `json:"sales"`
	Orders            repo.CountAndSum         `json:"orders"`
	TopProducts       []repo.ProductQuantity   `json:"top_products"`
	TopCustomers      []repo.CustomerPurchases `json:"top_customers"`
	LowStock          []repo.ProductStock      `json:"low_stock"`
	LowStockThreshold int64                    `json:"low_stock_threshold"`
}

func (u *ReportUsecase) Summary(ctx context.Context) (ReportSummary, error) {
	var out ReportSummary
	var err error

	if out.Sales, err = u.reports.SalesTotals(ctx); err != nil {
		return ReportSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.Orders, err = u.reports.OrderTotals(ctx); err != nil {
		return ReportSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.TopProducts, err = u.reports.TopSellingProducts(ctx, reportTopN); err != nil {
		return ReportSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.TopCustomers, err = u.reports.TopCustomersBySales(ctx, reportTopN); err != nil {
		return ReportSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if out.LowStock, err = u.reports.LowStockProducts(ctx, u.lowStockThreshold, reportTopN); err != nil {
		return ReportSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.LowStockThreshold = u.lowStockThreshold

	//JSONでnullにしない
	if out.TopProducts == nil {
		out.TopProducts = []repo.ProductQuantity{}
	}
	if out.TopCustomers == nil {
		out.TopCustomers = []repo.CustomerPurchases{}
	}
	if out.LowStock == nil {
		out.LowStock = []repo.ProductStock{}
	}
	return out, nil
}
