package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxEntryRepository implements the entry ports using pgxpool.
type PgxEntryRepository struct {
	BaseRepository
}

// NewPgxEntryRepository creates a new PgxEntryRepository.
func NewPgxEntryRepository(db *pgxpool.Pool) *PgxEntryRepository {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// SaveEntry persists an entry and its lines atomically.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	m := mapping.ToModelEntry(entry)
	_, err = tx.Exec(ctx, `
		INSERT INTO entries (
			entry_id, document_id, entry_number, entry_date, journal_code, journal_label,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.EntryID, m.DocumentID, m.EntryNumber, m.EntryDate, m.JournalCode, m.JournalLabel,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to save entry", err)
	}

	for _, line := range entry.Lines {
		ml := mapping.ToModelEntryLine(entry.EntryID, line)
		_, err = tx.Exec(ctx, `
			INSERT INTO entry_lines (
				line_id, entry_id, label, debit, credit,
				converted_debit, converted_credit, usd_debit, usd_credit,
				currency_code, converted_currency_code, exchange_rate, rate_date,
				account_id, account_number
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
			ml.LineID, ml.EntryID, ml.Label, ml.Debit, ml.Credit,
			ml.ConvertedDebit, ml.ConvertedCredit, ml.USDDebit, ml.USDCredit,
			ml.CurrencyCode, ml.ConvertedCurrencyCode, ml.ExchangeRate, ml.RateDate,
			ml.AccountID, ml.AccountNumber,
		)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			return apperrors.NewAppError(500, "failed to save entry line", err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindEntriesByDocumentID returns all entries of a document with their lines.
func (r *PgxEntryRepository) FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.Entry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT
			entry_id, document_id, entry_number, entry_date, journal_code, journal_label,
			created_at, created_by, last_updated_at, last_updated_by
		FROM entries
		WHERE document_id = $1
		ORDER BY entry_date ASC;`, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list entries", err)
	}
	defer rows.Close()

	var entryRows []models.Entry
	for rows.Next() {
		var m models.Entry
		err := rows.Scan(
			&m.EntryID, &m.DocumentID, &m.EntryNumber, &m.EntryDate, &m.JournalCode, &m.JournalLabel,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry", err)
		}
		entryRows = append(entryRows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entries", err)
	}

	entries := make([]domain.Entry, 0, len(entryRows))
	for _, m := range entryRows {
		lines, err := r.findLinesByEntryID(ctx, m.EntryID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, mapping.ToDomainEntry(m, lines))
	}
	return entries, nil
}

func (r *PgxEntryRepository) findLinesByEntryID(ctx context.Context, entryID string) ([]models.EntryLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT
			line_id, entry_id, label, debit, credit,
			converted_debit, converted_credit, usd_debit, usd_credit,
			currency_code, converted_currency_code, exchange_rate, rate_date,
			account_id, account_number
		FROM entry_lines
		WHERE entry_id = $1;`, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list entry lines", err)
	}
	defer rows.Close()

	var lines []models.EntryLine
	for rows.Next() {
		var l models.EntryLine
		err := rows.Scan(
			&l.LineID, &l.EntryID, &l.Label, &l.Debit, &l.Credit,
			&l.ConvertedDebit, &l.ConvertedCredit, &l.USDDebit, &l.USDCredit,
			&l.CurrencyCode, &l.ConvertedCurrencyCode, &l.ExchangeRate, &l.RateDate,
			&l.AccountID, &l.AccountNumber,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry lines", err)
	}
	return lines, nil
}

// FindDocumentByEntryMatch returns the earliest-uploaded other document in the
// case file owning an entry on the given date whose largest line amount lies
// within tolerance of amount.
func (r *PgxEntryRepository) FindDocumentByEntryMatch(ctx context.Context, caseFileID string, entryDate time.Time, amount, tolerance decimal.Decimal, excludeDocumentID string) (string, error) {
	query := `
		SELECT e.document_id
		FROM entries e
		JOIN documents d ON d.document_id = e.document_id
		JOIN entry_lines l ON l.entry_id = e.entry_id
		WHERE d.case_file_id = $1
			AND e.entry_date = $2
			AND e.document_id != $3
			AND d.is_duplicate = FALSE
		GROUP BY e.entry_id, e.document_id, d.uploaded_at
		HAVING ABS(MAX(GREATEST(l.debit, l.credit)) - $4) <= $5
		ORDER BY d.uploaded_at ASC
		LIMIT 1;
	`

	var documentID string
	err := r.Pool.QueryRow(ctx, query,
		caseFileID, entryDate.Truncate(24*time.Hour), excludeDocumentID, amount, tolerance,
	).Scan(&documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError("no entry match for amount " + amount.String())
		}
		return "", apperrors.NewAppError(500, "failed to find document by entry match", err)
	}
	return documentID, nil
}
