package repository_test

import (
	"context"
	"testing"

	"backoffice/internal/domain/model"
	infrarepo "backoffice/internal/infra/repository"
	repo "backoffice/internal/repository"
	"backoffice/internal/usecase"
	"backoffice/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompositionUsecase(t *testing.T) (*usecase.CompositionUsecase, func() []model.AuditLog) {
	db := newTestDB(t)
	uc := usecase.NewCompositionUsecase(infrarepo.NewTxManagerGorm(db), validator.NewCompositionValidator())
	audits := func() []model.AuditLog {
		logs, err := infrarepo.NewAuditLogGormRepository(db).List(context.Background(), repo.AuditLogFilter{})
		require.NoError(t, err)
		return logs
	}
	return uc, audits
}

func TestComposition_ReplaceThenGet(t *testing.T) {
	uc, audits := newCompositionUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.ReplaceComposition(ctx, ownerID, "SET-1", []usecase.CompositionItem{
		{ComponentSKU: "X2", Quantity: 1},
		{ComponentSKU: "X1", Quantity: 2},
	}))

	got, err := uc.GetComposition(ctx, ownerID, "SET-1")
	require.NoError(t, err)
	assert.Equal(t, []usecase.CompositionItem{
		{ComponentSKU: "X2", Quantity: 1},
		{ComponentSKU: "X1", Quantity: 2},
	}, got)

	// 丸ごと置き換わる（残りは消える）
	require.NoError(t, uc.ReplaceComposition(ctx, ownerID, "SET-1", []usecase.CompositionItem{
		{ComponentSKU: "X1", Quantity: 5},
	}))
	got, err = uc.GetComposition(ctx, ownerID, "SET-1")
	require.NoError(t, err)
	assert.Equal(t, []usecase.CompositionItem{{ComponentSKU: "X1", Quantity: 5}}, got)

	logs := audits()
	require.Len(t, logs, 2)
	assert.Equal(t, model.AuditActionReplaceComposition, logs[0].Action)
	assert.Contains(t, logs[0].BeforeJSON, "X2")
}

func TestComposition_InvalidReplaceKeepsExisting(t *testing.T) {
	uc, audits := newCompositionUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.ReplaceComposition(ctx, ownerID, "SET-1", []usecase.CompositionItem{
		{ComponentSKU: "X1", Quantity: 1},
	}))

	err := uc.ReplaceComposition(ctx, ownerID, "SET-1", []usecase.CompositionItem{
		{ComponentSKU: "X2", Quantity: 1},
		{ComponentSKU: "X2", Quantity: 3},
	})
	_, ok := usecase.AsValidationError(err)
	require.True(t, ok)

	got, err := uc.GetComposition(ctx, ownerID, "SET-1")
	require.NoError(t, err)
	assert.Equal(t, []usecase.CompositionItem{{ComponentSKU: "X1", Quantity: 1}}, got)
	assert.Len(t, audits(), 1)
}

func TestComposition_OwnersAreIsolated(t *testing.T) {
	uc, _ := newCompositionUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.ReplaceComposition(ctx, ownerID, "SET-1", []usecase.CompositionItem{{ComponentSKU: "X1", Quantity: 1}}))
	require.NoError(t, uc.ReplaceComposition(ctx, 99, "SET-1", []usecase.CompositionItem{{ComponentSKU: "Y1", Quantity: 4}}))

	got, err := uc.GetComposition(ctx, ownerID, "SET-1")
	require.NoError(t, err)
	assert.Equal(t, []usecase.CompositionItem{{ComponentSKU: "X1", Quantity: 1}}, got)
}

func TestComposition_CandidatesExcludeBundleItself(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seedVariant(t, db, ownerID, "Foo", "FOO-1", model.SKUTypeMandiri, 1)
	seedVariant(t, db, ownerID, "Foo", "FOO-2", model.SKUTypeMandiri, 1)

	uc := usecase.NewCompositionUsecase(infrarepo.NewTxManagerGorm(db), validator.NewCompositionValidator())
	got, err := uc.SearchComponentCandidates(ctx, ownerID, "foo", "FOO-2", 10)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FOO-1", got[0].SKU)
}
