package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"
	"tienda/internal/validator"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type CustomerUsecase struct {
	customers repo.CustomerRepository
	audits    repo.AuditLogRepository
}

// DI
func NewCustomerUsecase(customers repo.CustomerRepository, audits repo.AuditLogRepository) *CustomerUsecase {
	return &CustomerUsecase{customers: customers, audits: audits}
}

// 作成・更新の入力
type CustomerInput struct {
	FirstName string
	LastName  string
	DNI       string
	Phone     string
	Email     string
	Address   string
}

// 選択肢（id + 表示名）
type CustomerOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (u *CustomerUsecase) List(ctx context.Context) ([]model.Customer, error) {
	items, err := u.customers.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CustomerUsecase) Options(ctx context.Context) ([]CustomerOption, error) {
	items, err := u.customers.ListOrderedByName(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out := make([]CustomerOption, 0, len(items))
	for _, c := range items {
		out = append(out, CustomerOption{ID: c.ID, Name: c.DisplayName()})
	}
	return out, nil
}

func (u *CustomerUsecase) Create(ctx context.Context, in CustomerInput) (model.Customer, error) {
	c, err := normalizeCustomer(in)
	if err != nil {
		return model.Customer{}, err
	}

	exists, err := u.customers.ExistsByDNI(ctx, c.DNI, 0)
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Customer{}, NewHTTPError(http.StatusConflict, "dni already registered")
	}

	created, err := u.customers.Create(ctx, c)
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Customer{}, NewHTTPError(http.StatusConflict, "dni already registered")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CustomerUsecase) Update(ctx context.Context, customerID int64, in CustomerInput) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}
	c, err := normalizeCustomer(in)
	if err != nil {
		return err
	}
	c.ID = customerID

	//自分以外に同じDNIがいないか
	exists, err := u.customers.ExistsByDNI(ctx, c.DNI, customerID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return NewHTTPError(http.StatusConflict, "dni already registered")
	}

	err = u.customers.Update(ctx, c)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if errors.Is(err, repo.ErrDuplicate) {
		return NewHTTPError(http.StatusConflict, "dni already registered")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 売上がある顧客は消せない。注文との関連はFKのCASCADEで消える。
func (u *CustomerUsecase) Delete(ctx context.Context, staffID int64, customerID int64) error {
	if staffID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if customerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	before, err := u.customers.FindByID(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.customers.Delete(ctx, customerID)
	if errors.Is(err, repo.ErrHasDependents) {
		return NewHTTPError(http.StatusConflict, "customer has registered sales")
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.audits.Create(ctx, model.AuditLog{
		ActorStaffID: staffID,
		Action:       model.AuditActionDeleteCustomer,
		ResourceType: model.AuditResourceCustomer,
		ResourceID:   customerID,
		BeforeJSON:   fmt.Sprintf(`{"dni":%q,"name":%q}`, before.DNI, before.DisplayName()),
		AfterJSON:    "",
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 入力チェックと整形（名前はタイトルケース、メールは小文字、空の任意項目はNULL）
func normalizeCustomer(in CustomerInput) (model.Customer, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	dni := strings.TrimSpace(in.DNI)

	if first == "" || last == "" || dni == "" {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "first_name, last_name and dni are required")
	}
	if !validator.IsDNI(dni) {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "dni must be 8 digits")
	}

	email := optional(strings.ToLower(in.Email))
	if email != nil && !validator.IsEmail(*email) {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	title := cases.Title(language.Und)
	return model.Customer{
		FirstName: title.String(first),
		LastName:  title.String(last),
		DNI:       dni,
		Phone:     optional(in.Phone),
		Email:     email,
		Address:   optional(in.Address),
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
