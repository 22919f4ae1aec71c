package repository

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

// % と _ は文字そのものとして扱う
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type VariantGormRepository struct {
	db *gorm.DB
}

// DI
func NewVariantGormRepository(db *gorm.DB) *VariantGormRepository {
	return &VariantGormRepository{db: db}
}

func (r *VariantGormRepository) FindByID(ctx context.Context, ownerID int64, id int64) (model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductVariant{}, storageError("find variant", err)
	}
	return v, nil
}

// SKU完全一致（owner単位）
func (r *VariantGormRepository) FindBySKU(ctx context.Context, ownerID int64, sku string) (model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).Where("user_id = ? AND sku = ?", ownerID, sku).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductVariant{}, storageError("find variant by sku", err)
	}
	return v, nil
}

// 単品SKUを SKU / バリアント名 / 商品名 の部分一致で探す。
// 重複除去はしない（呼び出し側で行う）
func (r *VariantGormRepository) SearchStandalone(ctx context.Context, q repo.CandidateQuery) ([]repo.VariantCandidate, error) {
	tx := r.db.WithContext(ctx).
		Table("product_variants AS v").
		Select("v.id AS variant_id, v.sku AS sku, v.name AS name, p.name AS product_name, v.warehouse_stock AS warehouse_stock").
		Joins("JOIN products AS p ON p.id = v.product_id AND p.deleted_at IS NULL").
		Where("v.user_id = ? AND v.sku_type = ?", q.OwnerID, model.SKUTypeMandiri)

	if s := strings.ToLower(strings.TrimSpace(q.Q)); s != "" {
		like := "%" + likeEscaper.Replace(s) + "%"
		tx = tx.Where(`(LOWER(v.sku) LIKE ? ESCAPE '\' OR LOWER(v.name) LIKE ? ESCAPE '\' OR LOWER(p.name) LIKE ? ESCAPE '\')`, like, like, like)
	}
	if ex := strings.TrimSpace(q.ExcludeSKU); ex != "" {
		tx = tx.Where("v.sku <> ?", ex)
	}
	if q.FetchLimit > 0 {
		tx = tx.Limit(q.FetchLimit)
	}

	var out []repo.VariantCandidate
	if err := tx.Order("v.sku asc").Order("v.id asc").Scan(&out).Error; err != nil {
		return []repo.VariantCandidate{}, storageError("search variants", err)
	}
	return out, nil
}
