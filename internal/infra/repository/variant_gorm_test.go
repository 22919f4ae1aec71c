package repository_test

import (
	"context"
	"testing"

	"backoffice/internal/domain/model"
	infrarepo "backoffice/internal/infra/repository"
	repo "backoffice/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skus(in []repo.VariantCandidate) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		out = append(out, c.SKU)
	}
	return out
}

func TestVariantGorm_SearchStandalone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedVariant(t, db, ownerID, "Foo Shirt", "X1", model.SKUTypeMandiri, 3)
	seedVariant(t, db, ownerID, "Bar Cap", "X2", model.SKUTypeMandiri, 1)
	seedVariant(t, db, ownerID, "Foo Set", "SET-FOO", model.SKUTypeBundle, 0)
	seedVariant(t, db, 99, "Foo Other", "X9", model.SKUTypeMandiri, 0)

	deleted := seedVariant(t, db, ownerID, "Foo Gone", "X3", model.SKUTypeMandiri, 0)
	require.NoError(t, db.Delete(&model.Product{}, deleted.ProductID).Error)

	r := infrarepo.NewVariantGormRepository(db)

	t.Run("matches product name case-insensitively", func(t *testing.T) {
		got, err := r.SearchStandalone(ctx, repo.CandidateQuery{OwnerID: ownerID, Q: "FOO"})
		require.NoError(t, err)
		assert.Equal(t, []string{"X1"}, skus(got))
		assert.Equal(t, "Foo Shirt", got[0].ProductName)
		assert.Equal(t, int64(3), got[0].WarehouseStock)
	})

	t.Run("matches sku", func(t *testing.T) {
		got, err := r.SearchStandalone(ctx, repo.CandidateQuery{OwnerID: ownerID, Q: "x2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"X2"}, skus(got))
	})

	t.Run("empty query lists all standalone", func(t *testing.T) {
		got, err := r.SearchStandalone(ctx, repo.CandidateQuery{OwnerID: ownerID})
		require.NoError(t, err)
		assert.Equal(t, []string{"X1", "X2"}, skus(got))
	})

	t.Run("excludes sku", func(t *testing.T) {
		got, err := r.SearchStandalone(ctx, repo.CandidateQuery{OwnerID: ownerID, ExcludeSKU: "X1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"X2"}, skus(got))
	})

	t.Run("fetch limit", func(t *testing.T) {
		got, err := r.SearchStandalone(ctx, repo.CandidateQuery{OwnerID: ownerID, FetchLimit: 1})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestVariantGorm_FindBySKUIsExactAndOwned(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	v := seedVariant(t, db, ownerID, "Tee", "SKU-A", model.SKUTypeMandiri, 1)
	r := infrarepo.NewVariantGormRepository(db)

	got, err := r.FindBySKU(ctx, ownerID, "SKU-A")
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	_, err = r.FindBySKU(ctx, ownerID, "sku-a")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.FindBySKU(ctx, 99, "SKU-A")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.FindByID(ctx, 99, v.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestVariantGorm_SearchStandaloneTreatsWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedVariant(t, db, ownerID, "Tee", "SKU-A", model.SKUTypeMandiri, 1)
	seedVariant(t, db, ownerID, "Cap", "SKU-B", model.SKUTypeMandiri, 1)
	seedVariant(t, db, ownerID, "Mug", "S_U-1", model.SKUTypeMandiri, 1)
	seedVariant(t, db, ownerID, "Pin 100%", "P-1", model.SKUTypeMandiri, 1)

	r := infrarepo.NewVariantGormRepository(db)

	cases := map[string][]string{
		"_":   {"S_U-1"},
		"S_U": {"S_U-1"},
		"%":   {"P-1"},
		`\`:   {},
		"sku": {"SKU-A", "SKU-B"},
	}
	for q, want := range cases {
		t.Run(q, func(t *testing.T) {
			got, err := r.SearchStandalone(ctx, repo.CandidateQuery{OwnerID: ownerID, Q: q})
			require.NoError(t, err)
			assert.Equal(t, want, skus(got))
		})
	}
}
