package domain

// Account is one entry in a case file's chart of accounts. Accounts are
// resolved by number during entry building and created on demand when the
// extraction references a number the chart does not yet contain.
type Account struct {
	AccountID  string `json:"accountID"`
	CaseFileID string `json:"caseFileID"`
	Number     string `json:"number"`
	Label      string `json:"label"`
	AuditFields
}
