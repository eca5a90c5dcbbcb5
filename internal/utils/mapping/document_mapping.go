package mapping

import (
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
)

// ToModelDocument converts a domain Document to a model Document.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:            d.DocumentID,
		CaseFileID:            d.CaseFileID,
		Filename:              d.Filename,
		OriginalFilename:      d.OriginalFilename,
		Category:              string(d.Category),
		Status:                string(d.Status),
		UploadedAt:            d.UploadedAt,
		SummaryAmount:         d.SummaryAmount,
		AIAmount:              d.AIAmount,
		AICurrencyCode:        d.AICurrencyCode,
		ExchangeRate:          d.ExchangeRate,
		ConvertedCurrencyCode: d.ConvertedCurrencyCode,
		RateEffectiveDate:     d.RateEffectiveDate,
		IsDuplicate:           d.IsDuplicate,
		IsForced:              d.IsForced,
		OriginalDocumentID:    d.OriginalDocumentID,
		RejectionReason:       d.RejectionReason,
		AuditFields:           toModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:            m.DocumentID,
		CaseFileID:            m.CaseFileID,
		Filename:              m.Filename,
		OriginalFilename:      m.OriginalFilename,
		Category:              domain.DocumentCategory(m.Category),
		Status:                domain.DocumentStatus(m.Status),
		UploadedAt:            m.UploadedAt,
		SummaryAmount:         m.SummaryAmount,
		AIAmount:              m.AIAmount,
		AICurrencyCode:        m.AICurrencyCode,
		ExchangeRate:          m.ExchangeRate,
		ConvertedCurrencyCode: m.ConvertedCurrencyCode,
		RateEffectiveDate:     m.RateEffectiveDate,
		IsDuplicate:           m.IsDuplicate,
		IsForced:              m.IsForced,
		OriginalDocumentID:    m.OriginalDocumentID,
		RejectionReason:       m.RejectionReason,
		AuditFields:           toDomainAuditFields(m.AuditFields),
	}
}
