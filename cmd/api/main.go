package main

import (
	"time"

	"backoffice/internal/config"
	"backoffice/internal/handler"
	"backoffice/internal/infra/db"
	"backoffice/internal/infra/events"
	"backoffice/internal/infra/lock"
	infraRepo "backoffice/internal/infra/repository"
	"backoffice/internal/logger"
	"backoffice/internal/server"
	"backoffice/internal/usecase"
	"backoffice/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envはなくても良い（本番は環境変数）
	_ = godotenv.Load("../.env")

	cfg, err := config.LoadAPI()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("auto-migrate failed")
	}

	txm := infraRepo.NewTxManagerGorm(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	clock := &realClock{}

	//ロック・イベントは設定があるときだけ
	var locker usecase.JobLocker
	if cfg.RedisAddr != "" {
		rdb := lock.NewClient(cfg.RedisAddr)
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb)
	}
	var publisher usecase.StockEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopicStock, "backoffice-api")
		defer kp.Close()
		publisher = kp
	}

	//Usecase生成
	compositionUC := usecase.NewCompositionUsecase(txm, validator.NewCompositionValidator())
	inventoryUC := usecase.NewInventoryUsecase(txm, clock)
	orderUC := usecase.NewOrderUsecase(txm, clock)
	auditUC := usecase.NewAuditUsecase(auditRepo)
	stockUC := usecase.NewStockDeductionUsecase(txm, locker, publisher, &uuidGenerator{}, cfg.StockJobWindowDays, cfg.StockJobLockTTL)

	e := server.New(cfg, log, server.Handlers{
		Compositions: handler.NewCompositionHandler(compositionUC),
		Inventory:    handler.NewInventoryHandler(inventoryUC),
		Orders:       handler.NewOrderHandler(orderUC),
		Audit:        handler.NewAuditHandler(auditUC),
		StockJob:     handler.NewStockJobHandler(stockUC, clock),
	})

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	log.WithField("addr", addr).Info("api server starting")
	if err := server.Start(addr, e); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
