package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/infra/db"
	"backoffice/internal/infra/events"
	"backoffice/internal/infra/lock"
	infraRepo "backoffice/internal/infra/repository"
	"backoffice/internal/logger"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

// 外部スケジューラ（cron等）から1回ずつ起動される。
// 注文単位の失敗では終了コードを変えない
func main() {
	nowFlag := flag.String("now", "", "override current time (RFC3339)")
	migrate := flag.Bool("migrate", false, "run auto-migration before processing")
	flag.Parse()

	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	now := time.Now()
	if *nowFlag != "" {
		now, err = time.Parse(time.RFC3339, *nowFlag)
		if err != nil {
			log.WithError(err).Fatal("invalid -now")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if *migrate {
		if err := db.Migrate(gormDB); err != nil {
			log.WithError(err).Fatal("auto-migrate failed")
		}
	}

	var locker usecase.JobLocker
	if cfg.RedisAddr != "" {
		rdb := lock.NewClient(cfg.RedisAddr)
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb)
	}
	var publisher usecase.StockEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopicStock, "backoffice-stockjob")
		defer kp.Close()
		publisher = kp
	}

	uc := usecase.NewStockDeductionUsecase(
		infraRepo.NewTxManagerGorm(gormDB),
		locker,
		publisher,
		&uuidGenerator{},
		cfg.StockJobWindowDays,
		cfg.StockJobLockTTL,
	)

	report, err := uc.ProcessPickedUpOrders(ctx, now)
	if errors.Is(err, usecase.ErrJobAlreadyRunning) {
		log.Warn("another stock deduction run holds the lock; nothing to do")
		return
	}
	if err != nil {
		log.WithError(err).Error("stock deduction run aborted")
		os.Exit(1)
	}

	logReport(log, report)
}

func logReport(log *logrus.Logger, r usecase.ProcessingReport) {
	runLog := log.WithField("run_id", r.RunID)

	for _, w := range r.Warnings {
		runLog.WithFields(logrus.Fields{
			"kind":     w.Kind,
			"order_id": w.OrderID,
			"serial":   w.SerialNumber,
			"sku":      w.SKU,
			"quantity": w.Quantity,
		}).Warn(w.Message)
	}

	for _, o := range r.Outcomes {
		fields := logrus.Fields{
			"order_id": o.OrderID,
			"serial":   o.SerialNumber,
			"status":   o.Status,
			"lines":    o.DeductedLines,
		}
		if o.Status == usecase.OutcomeFailed {
			runLog.WithFields(fields).WithField("reason", o.Reason).Error("order stock deduction failed")
			continue
		}
		runLog.WithFields(fields).Info("order handled")
	}

	runLog.WithFields(logrus.Fields{
		"window_from": r.WindowFrom.Format(time.RFC3339),
		"window_to":   r.WindowTo.Format(time.RFC3339),
		"scanned":     r.Scanned,
		"processed":   r.Processed(),
		"failed":      r.Failed(),
		"skipped":     r.Skipped(),
		"warnings":    len(r.Warnings),
	}).Info("stock deduction run finished")
}
