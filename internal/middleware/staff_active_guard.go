package middleware

import (
	"net/http"

	"tienda/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTが有効でも、停止されたスタッフは通さない。
// roleはDBの最新値で上書きする（降格がすぐ効くように）。
func StaffActiveGuard(staffRepo repository.StaffRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたstaff_idを取得する
			staffID, ok := c.Get(CtxStaffIDKey).(int64)
			if !ok || staffID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			staff, err := staffRepo.FindByID(c.Request().Context(), staffID)
			if err != nil || staff == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if !staff.IsActive {
				return c.JSON(http.StatusForbidden, errorJSON("staff is inactive"))
			}

			c.Set(CtxStaffRoleKey, string(staff.Role))
			return next(c)
		}
	}
}
