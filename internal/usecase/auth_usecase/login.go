package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"tienda/internal/domain/model"
	"tienda/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Staff model.Staff    `json:"staff"`
	Token JwtAccessToken `json:"token"`
}

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止済みスタッフ
var ErrStaffInactive = errors.New("staff is inactive")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(staffID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	staffRepo repository.StaffRepository
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
}

func NewLoginUsecase(
	staffRepo repository.StaffRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		staffRepo: staffRepo,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	staff, err := u.staffRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, staff.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//停止スタッフはログイン不可
	if !staff.IsActive {
		return out, ErrStaffInactive
	}

	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(staff.ID, staff.Role, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	staff.LastLoginAt = &now
	if err := u.staffRepo.Update(ctx, staff); err != nil {
		return out, err
	}

	//出力（ハッシュは返さない）
	out.Staff = *staff
	out.Staff.PasswordHash = ""
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}
	return out, nil
}
