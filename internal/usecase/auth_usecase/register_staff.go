package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"tienda/internal/domain/model"
	"tienda/internal/repository"
	"tienda/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

// スタッフ登録の入力
type RegisterStaffInput struct {
	Email    string
	Password string
}

// スタッフ登録の出力
type RegisterStaffOutput struct {
	Staff model.Staff `json:"staff"`
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")

	// 競合
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type RegisterStaffUsecase struct {
	staffRepo repository.StaffRepository
	hasher    PasswordHasher
	clock     Clock
}

// DI
func NewRegisterStaffUsecase(
	staffRepo repository.StaffRepository,
	hasher PasswordHasher,
	clock Clock,
) *RegisterStaffUsecase {
	return &RegisterStaffUsecase{
		staffRepo: staffRepo,
		hasher:    hasher,
		clock:     clock,
	}
}

// 最初に登録したスタッフだけADMINになる
func (u *RegisterStaffUsecase) Execute(ctx context.Context, in RegisterStaffInput) (RegisterStaffOutput, error) {
	var out RegisterStaffOutput

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validator.IsEmail(email) {
		return out, ErrInvalidEmailFormat
	}
	if len(in.Password) < validator.MinPasswordLength {
		return out, ErrPasswordTooShort
	}
	if validator.IsWeakPassword(in.Password) {
		return out, ErrWeakPassword
	}

	// email重複チェック
	existing, err := u.staffRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return out, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	count, err := u.staffRepo.Count(ctx)
	if err != nil {
		return out, err
	}
	role := model.RoleStaff
	if count == 0 {
		role = model.RoleAdmin
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	staff := &model.Staff{
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.staffRepo.Create(ctx, staff); err != nil {
		//同時登録でUNIQUEに当たった
		if errors.Is(err, repository.ErrDuplicate) {
			return out, ErrEmailAlreadyExists
		}
		return out, err
	}

	out.Staff = *staff
	out.Staff.PasswordHash = ""
	return out, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
