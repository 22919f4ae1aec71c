package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
)

const (
	DefaultCandidateLimit = 10
	MaxCandidateLimit     = 50

	// 結合で同じSKUが複数行になるので多めに取ってから絞る
	candidateOverfetch = 4
)

type CompositionItem struct {
	ComponentSKU string `json:"component_sku"`
	Quantity     int64  `json:"quantity"`
}

// 構成入力の検証（実装は validator パッケージ）
type CompositionValidator interface {
	ValidateComposition(bundleSKU string, items []CompositionItem) ([]CompositionItem, error)
}

type CompositionUsecase struct {
	tx        repo.TransactionManager
	validator CompositionValidator
}

// DI
func NewCompositionUsecase(tx repo.TransactionManager, validator CompositionValidator) *CompositionUsecase {
	return &CompositionUsecase{tx: tx, validator: validator}
}

// 構成を取得。未定義なら空
func (u *CompositionUsecase) GetComposition(ctx context.Context, ownerID int64, bundleSKU string) ([]CompositionItem, error) {
	if ownerID <= 0 {
		return []CompositionItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	bundleSKU = strings.TrimSpace(bundleSKU)
	if bundleSKU == "" {
		return []CompositionItem{}, NewValidationError("bundle_sku", "required")
	}

	var out []CompositionItem
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rows, err := r.Compositions().ListByBundle(ctx, ownerID, bundleSKU)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toCompositionItems(rows)
		return nil
	})
	if err != nil {
		return []CompositionItem{}, err
	}
	return out, nil
}

// 構成を丸ごと置き換える（全削除→作成）。検証エラーなら何も書かない
func (u *CompositionUsecase) ReplaceComposition(ctx context.Context, ownerID int64, bundleSKU string, items []CompositionItem) error {
	if ownerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	bundleSKU = strings.TrimSpace(bundleSKU)
	normalized, err := u.validator.ValidateComposition(bundleSKU, items)
	if err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Compositions().ListByBundle(ctx, ownerID, bundleSKU)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Compositions().DeleteByBundle(ctx, ownerID, bundleSKU); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		rows := make([]model.SKUComposition, 0, len(normalized))
		for _, it := range normalized {
			rows = append(rows, model.SKUComposition{
				UserID:       ownerID,
				BundleSKU:    bundleSKU,
				ComponentSKU: it.ComponentSKU,
				Quantity:     it.Quantity,
			})
		}
		if err := r.Compositions().CreateBulk(ctx, rows); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（REPLACE_COMPOSITION）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  ownerID,
			Action:       model.AuditActionReplaceComposition,
			ResourceType: model.AuditResourceComposition,
			BeforeJSON:   compositionJSON(bundleSKU, toCompositionItems(before)),
			AfterJSON:    compositionJSON(bundleSKU, normalized),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// 構成に使える単品SKUの候補。SKUごとに1件（最初に出たもの）だけ返す
func (u *CompositionUsecase) SearchComponentCandidates(ctx context.Context, ownerID int64, query string, excludeSKU string, limit int) ([]repo.VariantCandidate, error) {
	if ownerID <= 0 {
		return []repo.VariantCandidate{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	if limit > MaxCandidateLimit {
		limit = MaxCandidateLimit
	}
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) > 100 {
		return []repo.VariantCandidate{}, NewValidationError("q", "too long")
	}

	var out []repo.VariantCandidate
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		found, err := r.Variants().SearchStandalone(ctx, repo.CandidateQuery{
			OwnerID:    ownerID,
			Q:          query,
			ExcludeSKU: strings.TrimSpace(excludeSKU),
			FetchLimit: limit * candidateOverfetch,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = DedupeCandidatesBySKU(found, limit)
		return nil
	})
	if err != nil {
		return []repo.VariantCandidate{}, err
	}
	return out, nil
}

// 順序を保ったままSKUで重複を落とし、limit件で切る
func DedupeCandidatesBySKU(in []repo.VariantCandidate, limit int) []repo.VariantCandidate {
	seen := make(map[string]struct{}, len(in))
	out := make([]repo.VariantCandidate, 0, len(in))
	for _, c := range in {
		if _, ok := seen[c.SKU]; ok {
			continue
		}
		seen[c.SKU] = struct{}{}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func toCompositionItems(rows []model.SKUComposition) []CompositionItem {
	out := make([]CompositionItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, CompositionItem{ComponentSKU: r.ComponentSKU, Quantity: r.Quantity})
	}
	return out
}

func compositionJSON(bundleSKU string, items []CompositionItem) string {
	b, err := json.Marshal(struct {
		BundleSKU string            `json:"bundle_sku"`
		Items     []CompositionItem `json:"items"`
	}{bundleSKU, items})
	if err != nil {
		return "{}"
	}
	return string(b)
}
