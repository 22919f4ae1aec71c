package db

import (
	"backoffice/internal/config"
	"backoffice/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// Migrate はこのサービスが使うテーブルを作る
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.ProductVariant{},
		&model.SKUComposition{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusHistory{},
		&model.StockMovement{},
		&model.AuditLog{},
	)
}
