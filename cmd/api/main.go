package main

import (
	"time"

	"tienda/internal/config"
	"tienda/internal/handler"
	"tienda/internal/infra/db"
	infraRepo "tienda/internal/infra/repository"
	"tienda/internal/server"
	"tienda/internal/usecase"
	auth "tienda/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（環境変数が入っていればそのまま使う）
	if err := godotenv.Load(); err != nil {
		log.Infof(".env not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg.GoEnv)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	//Repository（GORM実装）生成
	staffRepo := infraRepo.NewStaffGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	saleRepo := infraRepo.NewSaleGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	clock := &realClock{}

	//bcrypt（登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	//Usecase生成
	registerUC := auth.NewRegisterStaffUsecase(staffRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(staffRepo, verifier, issuer, clock)
	customerUC := usecase.NewCustomerUsecase(customerRepo, auditRepo)
	productUC := usecase.NewProductUsecase(productRepo, auditRepo)
	saleUC := usecase.NewSaleUsecase(saleRepo, customerRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txm, productRepo, customerRepo, clock)
	reportUC := usecase.NewReportUsecase(reportRepo, cfg.LowStockThreshold)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成
	e := server.New(cfg, staffRepo, server.Handlers{
		Auth:     handler.NewAuthHandler(registerUC, loginUC),
		Customer: handler.NewCustomerHandler(customerUC),
		Product:  handler.NewProductHandler(productUC),
		Sale:     handler.NewSaleHandler(saleUC),
		Order:    handler.NewOrderHandler(orderUC),
		Report:   handler.NewReportHandler(reportUC),
		Audit:    handler.NewAuditHandler(auditUC),
	})

	//Server起動
	if err := server.Start(e, cfg.Addr()); err != nil {
		e.Logger.Fatal(err)
	}
}
