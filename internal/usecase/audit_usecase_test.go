package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"tienda/internal/domain/model"
	"tienda/internal/mocks"
	repo "tienda/internal/repository"
	"tienda/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditUsecase_List_NormalizesFilter(t *testing.T) {
	audits := new(mocks.AuditRepoMock)
	audits.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Action != nil && *f.Action == model.AuditActionUpdateStock &&
			f.ResourceType != nil && *f.ResourceType == model.AuditResourceProduct
	})).Return(nil, nil)

	uc := usecase.NewAuditUsecase(audits)

	action := model.AuditAction("update_stock")
	rt := model.AuditResourceType("PRODUCT")
	logs, err := uc.List(context.Background(), repo.AuditLogFilter{Action: &action, ResourceType: &rt})

	require.NoError(t, err)
	assert.NotNil(t, logs)
	audits.AssertExpectations(t)
}

func TestAuditUsecase_List_InvalidFilter(t *testing.T) {
	uc := usecase.NewAuditUsecase(new(mocks.AuditRepoMock))

	bad := model.AuditAction("DROP_TABLE")
	_, err := uc.List(context.Background(), repo.AuditLogFilter{Action: &bad})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.List(context.Background(), repo.AuditLogFilter{Limit: 500})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}
