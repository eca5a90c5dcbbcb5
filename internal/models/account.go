package models

// Account is the accounts table row. (case_file_id, number) is unique.
type Account struct {
	AccountID  string `db:"account_id"`
	CaseFileID string `db:"case_file_id"`
	Number     string `db:"number"`
	Label      string `db:"label"`
	AuditFields
}
