package domain

// CaseFile is a client's accounting record set. Every ingested document belongs
// to exactly one case file.
type CaseFile struct {
	CaseFileID string `json:"caseFileID"`
	Name       string `json:"name"`
	// CurrencyCode is the mandatory bookkeeping currency. Processing fails hard
	// when it is unset; it is never defaulted.
	CurrencyCode string `json:"currencyCode"`
	AuditFields
}
