package usecase

import (
	"context"
	"net/http"
	"strings"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"
)

type AuditUsecase struct {
	audits repo.AuditLogRepository
}

func NewAuditUsecase(audits repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{audits: audits}
}

// 監査ログ一覧（ADMIN）
func (u *AuditUsecase) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if filter.Action != nil {
		switch a := model.AuditAction(strings.ToUpper(string(*filter.Action))); a {
		case model.AuditActionUpdateStock, model.AuditActionDeleteCustomer,
			model.AuditActionDeleteProduct, model.AuditActionCreateOrder:
			filter.Action = &a
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid action")
		}
	}
	if filter.ResourceType != nil {
		switch rt := model.AuditResourceType(strings.ToLower(string(*filter.ResourceType))); rt {
		case model.AuditResourceProduct, model.AuditResourceCustomer, model.AuditResourceOrder:
			filter.ResourceType = &rt
		default:
			return nil, NewHTTPError(http.StatusBadRequest, "invalid resource_type")
		}
	}
	if filter.Limit < 0 || filter.Limit > 200 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if filter.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && filter.CreatedFrom.After(*filter.CreatedTo) {
		return nil, NewHTTPError(http.StatusBadRequest, "from must be <= to")
	}

	logs, err := u.audits.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}
