package services

import "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"

// VariantKind names a processing variant. Variants differ only in how the
// extraction collaborator is addressed and how the raw payload is shaped; the
// pipeline around them is shared.
type VariantKind string

const (
	VariantStandard VariantKind = "standard"
	VariantBank     VariantKind = "bank"
)

// VariantFor maps a document category onto its processing variant. Unknown
// categories fall back to the standard variant.
func VariantFor(category domain.DocumentCategory) VariantKind {
	if category == domain.CategoryBankStatement {
		return VariantBank
	}
	return VariantStandard
}
