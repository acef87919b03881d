package usecase_test

import (
	"context"
	"errors"
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

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func TestCustomerUsecase_Create_Normalizes(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("ExistsByDNI", mock.Anything, "45678912", int64(0)).Return(false, nil)
	customers.On("Create", mock.Anything, mock.MatchedBy(func(c model.Customer) bool {
		return c.FirstName == "María José" &&
			c.LastName == "Quispe" &&
			c.Email != nil && *c.Email == "mjose@correo.pe" &&
			c.Phone == nil &&
			c.Address == nil
	})).Return(model.Customer{ID: 10, FirstName: "María José", LastName: "Quispe", DNI: "45678912"}, nil)

	uc := usecase.NewCustomerUsecase(customers, new(mocks.AuditRepoMock))

	c, err := uc.Create(context.Background(), usecase.CustomerInput{
		FirstName: "  maría josé ",
		LastName:  "QUISPE",
		DNI:       "45678912",
		Phone:     "   ",
		Email:     "MJose@Correo.pe",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), c.ID)
	customers.AssertExpectations(t)
}

func TestCustomerUsecase_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   usecase.CustomerInput
	}{
		{name: "missing first name", in: usecase.CustomerInput{LastName: "Rojas", DNI: "12345678"}},
		{name: "missing dni", in: usecase.CustomerInput{FirstName: "Carla", LastName: "Rojas"}},
		{name: "short dni", in: usecase.CustomerInput{FirstName: "Carla", LastName: "Rojas", DNI: "1234567"}},
		{name: "dni with letters", in: usecase.CustomerInput{FirstName: "Carla", LastName: "Rojas", DNI: "1234567X"}},
		{name: "bad email", in: usecase.CustomerInput{FirstName: "Carla", LastName: "Rojas", DNI: "12345678", Email: "carla"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := new(mocks.CustomerRepoMock)
			uc := usecase.NewCustomerUsecase(customers, new(mocks.AuditRepoMock))

			_, err := uc.Create(context.Background(), tt.in)

			assertHTTPStatus(t, err, http.StatusBadRequest)
			customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCustomerUsecase_Create_DuplicateDNI(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("ExistsByDNI", mock.Anything, "12345678", int64(0)).Return(true, nil)

	uc := usecase.NewCustomerUsecase(customers, new(mocks.AuditRepoMock))

	_, err := uc.Create(context.Background(), usecase.CustomerInput{FirstName: "Carla", LastName: "Rojas", DNI: "12345678"})

	assertHTTPStatus(t, err, http.StatusConflict)
}

func TestCustomerUsecase_Update_ExcludesSelfFromDNICheck(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("ExistsByDNI", mock.Anything, "12345678", int64(7)).Return(false, nil)
	customers.On("Update", mock.Anything, mock.MatchedBy(func(c model.Customer) bool {
		return c.ID == 7 && c.FirstName == "Carla"
	})).Return(nil)

	uc := usecase.NewCustomerUsecase(customers, new(mocks.AuditRepoMock))

	err := uc.Update(context.Background(), 7, usecase.CustomerInput{FirstName: "carla", LastName: "rojas", DNI: "12345678"})

	assert.NoError(t, err)
	customers.AssertExpectations(t)
}

func TestCustomerUsecase_Update_NotFound(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("ExistsByDNI", mock.Anything, "12345678", int64(7)).Return(false, nil)
	customers.On("Update", mock.Anything, mock.Anything).Return(repo.ErrNotFound)

	uc := usecase.NewCustomerUsecase(customers, new(mocks.AuditRepoMock))

	err := uc.Update(context.Background(), 7, usecase.CustomerInput{FirstName: "Carla", LastName: "Rojas", DNI: "12345678"})

	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCustomerUsecase_Delete_WritesAudit(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("FindByID", mock.Anything, int64(7)).Return(model.Customer{ID: 7, FirstName: "Carla", LastName: "Rojas", DNI: "12345678"}, nil)
	customers.On("Delete", mock.Anything, int64(7)).Return(nil)

	audits := new(mocks.AuditRepoMock)
	audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorStaffID == 1 &&
			l.Action == model.AuditActionDeleteCustomer &&
			l.ResourceType == model.AuditResourceCustomer &&
			l.ResourceID == 7 &&
			l.BeforeJSON == `{"dni":"12345678","name":"Carla Rojas"}`
	})).Return(nil)

	uc := usecase.NewCustomerUsecase(customers, audits)

	err := uc.Delete(context.Background(), 1, 7)

	assert.NoError(t, err)
	customers.AssertExpectations(t)
	audits.AssertExpectations(t)
}

func TestCustomerUsecase_Delete_HasSales(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("FindByID", mock.Anything, int64(7)).Return(model.Customer{ID: 7}, nil)
	customers.On("Delete", mock.Anything, int64(7)).Return(repo.ErrHasDependents)

	audits := new(mocks.AuditRepoMock)
	uc := usecase.NewCustomerUsecase(customers, audits)

	err := uc.Delete(context.Background(), 1, 7)

	assertHTTPStatus(t, err, http.StatusConflict)
	audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerUsecase_Options(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("ListOrderedByName", mock.Anything).Return([]model.Customer{
		{ID: 2, FirstName: "Ana", LastName: "Soto"},
		{ID: 1, FirstName: "Luis", LastName: "Paz"},
	}, nil)

	uc := usecase.NewCustomerUsecase(customers, new(mocks.AuditRepoMock))

	opts, err := uc.Options(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []usecase.CustomerOption{{ID: 2, Name: "Ana Soto"}, {ID: 1, Name: "Luis Paz"}}, opts)
}

func TestCustomerUsecase_List_DBError(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("List", mock.Anything).Return(nil, errors.New("boom"))

	uc := usecase.NewCustomerUsecase(customers, new(mocks.AuditRepoMock))

	_, err := uc.List(context.Background())

	assertHTTPStatus(t, err, http.StatusInternalServerError)
}
