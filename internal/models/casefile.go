package models

// CaseFile is the case_files table row.
type CaseFile struct {
	CaseFileID   string `db:"case_file_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	AuditFields
}
