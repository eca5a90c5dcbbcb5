package mapping

import (
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		CaseFileID:  d.CaseFileID,
		Number:      d.Number,
		Label:       d.Label,
		AuditFields: toModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		CaseFileID:  m.CaseFileID,
		Number:      m.Number,
		Label:       m.Label,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}
