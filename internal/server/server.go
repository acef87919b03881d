package server

import (
	"net/http"

	"tienda/internal/config"
	"tienda/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// echoを組み立てる（共通middleware + ルート）
func New(cfg config.Config, staffRepo repository.StaffRepository, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	if cfg.GoEnv == "dev" {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				c.Logger().Errorj(log.JSON{
					"id": v.RequestID, "method": v.Method, "uri": v.URI,
					"status": v.Status, "latency": v.Latency.String(), "error": errString(v.Error),
				})
				return nil
			}
			c.Logger().Infoj(log.JSON{
				"id": v.RequestID, "method": v.Method, "uri": v.URI,
				"status": v.Status, "latency": v.Latency.String(),
			})
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	RegisterRoutes(e, cfg, staffRepo, h)
	return e
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
