package repository_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"backoffice/internal/domain/model"
	infradb "backoffice/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const ownerID int64 = 7

// テストごとに別のインメモリDBを作る
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infradb.Migrate(db))
	return db
}

func seedVariant(t *testing.T, db *gorm.DB, owner int64, productName string, sku string, skuType model.SKUType, stock int64) model.ProductVariant {
	t.Helper()

	p := model.Product{UserID: owner, Name: productName}
	require.NoError(t, db.Create(&p).Error)

	v := model.ProductVariant{
		ProductID:      p.ID,
		UserID:         owner,
		SKU:            sku,
		Name:           productName + " " + sku,
		SKUType:        skuType,
		WarehouseStock: stock,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

type seedLine struct {
	sku string
	qty int64
}

// 注文と明細を作り、pickupがあれば picked_up 履歴も付ける
func seedOrder(t *testing.T, db *gorm.DB, owner int64, serial string, pickup *time.Time, lines ...seedLine) model.Order {
	t.Helper()

	o := model.Order{SerialNumber: serial, UserID: owner, Status: model.OrderStatusPending}
	require.NoError(t, db.Create(&o).Error)

	for _, l := range lines {
		require.NoError(t, db.Create(&model.OrderItem{
			OrderID:     o.ID,
			VariantSKU:  l.sku,
			ProductName: "item " + l.sku,
			Quantity:    l.qty,
		}).Error)
	}

	if pickup != nil {
		require.NoError(t, db.Create(&model.OrderStatusHistory{
			OrderID:    o.ID,
			Status:     model.OrderStatusPickedUp,
			PickupTime: pickup,
		}).Error)
	}
	return o
}

func ptrTime(t time.Time) *time.Time { return &t }

func reloadVariant(t *testing.T, db *gorm.DB, id int64) model.ProductVariant {
	t.Helper()
	var v model.ProductVariant
	require.NoError(t, db.First(&v, id).Error)
	return v
}

func reloadOrder(t *testing.T, db *gorm.DB, id int64) model.Order {
	t.Helper()
	var o model.Order
	require.NoError(t, db.First(&o, id).Error)
	return o
}

func movementsFor(t *testing.T, db *gorm.DB, variantID int64) []model.StockMovement {
	t.Helper()
	var rows []model.StockMovement
	require.NoError(t, db.Where("variant_id = ?", variantID).Order("id asc").Find(&rows).Error)
	return rows
}
