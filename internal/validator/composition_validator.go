package validator

import (
	"strings"

	"backoffice/internal/usecase"
)

const maxSKULength = 100

type compositionValidator struct{}

// Usecaseは interface を依存注入
func NewCompositionValidator() usecase.CompositionValidator {
	return &compositionValidator{}
}

// セット構成の入力を検証し、前後の空白を落とした構成を返す
func (v *compositionValidator) ValidateComposition(bundleSKU string, items []usecase.CompositionItem) ([]usecase.CompositionItem, error) {
	bundleSKU = strings.TrimSpace(bundleSKU)

	// 必須チェック
	if bundleSKU == "" {
		return nil, usecase.NewValidationError("bundle_sku", "required")
	}
	if len(bundleSKU) > maxSKULength {
		return nil, usecase.NewValidationError("bundle_sku", "too long")
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]usecase.CompositionItem, 0, len(items))
	for _, it := range items {
		sku := strings.TrimSpace(it.ComponentSKU)
		if sku == "" {
			return nil, usecase.NewValidationError("component_sku", "required")
		}
		if len(sku) > maxSKULength {
			return nil, usecase.NewValidationError("component_sku", "too long")
		}

		// 自己参照は不可
		if sku == bundleSKU {
			return nil, usecase.NewValidationError("component_sku", "bundle cannot contain itself")
		}

		// 同じ構成SKUは1回まで
		if _, dup := seen[sku]; dup {
			return nil, usecase.NewValidationError("component_sku", "duplicate component "+sku)
		}

		if it.Quantity < 1 {
			return nil, usecase.NewValidationError("quantity", "must be at least 1")
		}

		seen[sku] = struct{}{}
		out = append(out, usecase.CompositionItem{ComponentSKU: sku, Quantity: it.Quantity})
	}
	return out, nil
}
