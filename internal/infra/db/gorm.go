package db

import (
	"fmt"
	"os"
	"time"

	"tienda/internal/domain/model"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// devのときはSQLをすべてログに出す。
func Connect(goEnv string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(DSN()), &gorm.Config{
		Logger: newLogger(goEnv),
	})
}

// DATABASE_URL があれば最優先で使う
func DSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := getenv("POSTGRES_HOST", "localhost")
	port := getenv("POSTGRES_PORT", "5432")
	user := getenv("POSTGRES_USER", "postgres")
	pass := getenv("POSTGRES_PASSWORD", "postgres")
	name := getenv("POSTGRES_DB", "tienda")
	ssl := getenv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, ssl,
	)
}

// テーブルとFK制約を作る。
// 関連（customer_orders）は顧客・注文と一緒に消え、売上がある顧客・商品は消せない。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Staff{},
		&model.Customer{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Order{},
		&model.CustomerOrder{},
		&model.AuditLog{},
	)
}

// SQLログはechoと同じgommonのロガーに流す
func newLogger(goEnv string) logger.Interface {
	level := logger.Warn
	if goEnv == "dev" {
		level = logger.Info
	}
	return logger.New(
		log.New("gorm"),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
