package mapping

import (
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
)

// ToModelCaseFile converts a domain CaseFile to a model CaseFile.
func ToModelCaseFile(d domain.CaseFile) models.CaseFile {
	return models.CaseFile{
		CaseFileID:   d.CaseFileID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		AuditFields:  toModelAuditFields(d.AuditFields),
	}
}

// ToDomainCaseFile converts a model CaseFile to a domain CaseFile.
func ToDomainCaseFile(m models.CaseFile) domain.CaseFile {
	return domain.CaseFile{
		CaseFileID:   m.CaseFileID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		AuditFields:  toDomainAuditFields(m.AuditFields),
	}
}
