package mapping

import (
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
)

// ToModelInvoiceSummary converts a domain InvoiceSummary to its row form.
func ToModelInvoiceSummary(d domain.InvoiceSummary) models.InvoiceSummary {
	return models.InvoiceSummary{
		DocumentID:    d.DocumentID,
		InvoiceNumber: d.InvoiceNumber,
		InvoiceDate:   d.InvoiceDate,
		TaxRate:       d.TaxRate,
		TotalHT:       d.TotalHT,
		TotalTTC:      d.TotalTTC,
		TotalTVA:      d.TotalTVA,
		ConvertedHT:   d.ConvertedHT,
		ConvertedTTC:  d.ConvertedTTC,
		ConvertedTVA:  d.ConvertedTVA,
		USDHT:         d.USDHT,
		USDTTC:        d.USDTTC,
		USDTVA:        d.USDTVA,
	}
}

// ToDomainInvoiceSummary converts an invoice summary row to its domain form.
func ToDomainInvoiceSummary(m models.InvoiceSummary) domain.InvoiceSummary {
	return domain.InvoiceSummary{
		DocumentID:    m.DocumentID,
		InvoiceNumber: m.InvoiceNumber,
		InvoiceDate:   m.InvoiceDate,
		TaxRate:       m.TaxRate,
		TotalHT:       m.TotalHT,
		TotalTTC:      m.TotalTTC,
		TotalTVA:      m.TotalTVA,
		ConvertedHT:   m.ConvertedHT,
		ConvertedTTC:  m.ConvertedTTC,
		ConvertedTVA:  m.ConvertedTVA,
		USDHT:         m.USDHT,
		USDTTC:        m.USDTTC,
		USDTVA:        m.USDTVA,
	}
}
