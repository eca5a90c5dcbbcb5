package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/utils/filenames"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const documentColumns = `
	document_id, case_file_id, filename, original_filename, category, status,
	uploaded_at, summary_amount, ai_amount, ai_currency_code, exchange_rate,
	converted_currency_code, rate_effective_date, is_duplicate, is_forced,
	original_document_id, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxDocumentRepository implements the document ports using pgxpool.
type PgxDocumentRepository struct {
	BaseRepository
}

// NewPgxDocumentRepository creates a new PgxDocumentRepository.
func NewPgxDocumentRepository(db *pgxpool.Pool) *PgxDocumentRepository {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID, &m.CaseFileID, &m.Filename, &m.OriginalFilename, &m.Category,
		&m.Status, &m.UploadedAt, &m.SummaryAmount, &m.AIAmount, &m.AICurrencyCode,
		&m.ExchangeRate, &m.ConvertedCurrencyCode, &m.RateEffectiveDate, &m.IsDuplicate,
		&m.IsForced, &m.OriginalDocumentID, &m.RejectionReason,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindDocumentByID retrieves a document by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document with ID " + documentID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get document by ID", err)
	}

	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

// ListPendingDocuments returns up to limit documents in the given status,
// oldest upload first, excluding documents already classified duplicate.
func (r *PgxDocumentRepository) ListPendingDocuments(ctx context.Context, status domain.DocumentStatus, limit int) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE status = $1 AND is_duplicate = FALSE
		ORDER BY uploaded_at ASC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list pending documents", err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// ListDocumentsByCaseFile returns the documents of a case file, newest first.
func (r *PgxDocumentRepository) ListDocumentsByCaseFile(ctx context.Context, caseFileID string) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE case_file_id = $1
		ORDER BY uploaded_at DESC;
	`

	rows, err := r.Pool.Query(ctx, query, caseFileID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list documents by case file", err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// FindByOriginalFilename returns the earliest-uploaded other document in the
// case file with this exact original filename.
func (r *PgxDocumentRepository) FindByOriginalFilename(ctx context.Context, caseFileID, originalFilename, excludeDocumentID string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE case_file_id = $1 AND original_filename = $2 AND document_id != $3
		ORDER BY uploaded_at ASC
		LIMIT 1;
	`

	m, err := scanDocument(r.Pool.QueryRow(ctx, query, caseFileID, originalFilename, excludeDocumentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no document with original filename " + originalFilename)
		}
		return nil, apperrors.NewAppError(500, "failed to find document by original filename", err)
	}

	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

// FindByFilenameStem returns the earliest-uploaded other document in the case
// file whose stored filename stem matches. The stem column is populated at
// registration from the normalized original filename.
func (r *PgxDocumentRepository) FindByFilenameStem(ctx context.Context, caseFileID, stem, excludeDocumentID string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE case_file_id = $1 AND filename_stem = $2 AND document_id != $3
		ORDER BY uploaded_at ASC
		LIMIT 1;
	`

	m, err := scanDocument(r.Pool.QueryRow(ctx, query, caseFileID, stem, excludeDocumentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no document with filename stem " + stem)
		}
		return nil, apperrors.NewAppError(500, "failed to find document by filename stem", err)
	}

	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

// FindBySummaryMatch returns the earliest-uploaded other document in the case
// file whose invoice summary has this exact date and TTC total.
func (r *PgxDocumentRepository) FindBySummaryMatch(ctx context.Context, caseFileID string, invoiceDate time.Time, totalTTC decimal.Decimal, excludeDocumentID string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents d
		JOIN invoice_summaries s ON s.document_id = d.document_id
		WHERE d.case_file_id = $1 AND s.invoice_date = $2 AND s.total_ttc = $3
			AND d.document_id != $4 AND d.is_duplicate = FALSE
		ORDER BY d.uploaded_at ASC
		LIMIT 1;
	`

	m, err := scanDocument(r.Pool.QueryRow(ctx, query,
		caseFileID, invoiceDate.Truncate(24*time.Hour), totalTTC, excludeDocumentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no document with matching invoice summary")
		}
		return nil, apperrors.NewAppError(500, "failed to find document by summary match", err)
	}

	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

// FindInvoiceSummaryByDocumentID retrieves a document's invoice summary.
func (r *PgxDocumentRepository) FindInvoiceSummaryByDocumentID(ctx context.Context, documentID string) (*domain.InvoiceSummary, error) {
	query := `
		SELECT
			document_id, invoice_number, invoice_date, tax_rate,
			total_ht, total_ttc, total_tva,
			converted_ht, converted_ttc, converted_tva,
			usd_ht, usd_ttc, usd_tva
		FROM invoice_summaries
		WHERE document_id = $1;
	`

	var m models.InvoiceSummary
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&m.DocumentID, &m.InvoiceNumber, &m.InvoiceDate, &m.TaxRate,
		&m.TotalHT, &m.TotalTTC, &m.TotalTVA,
		&m.ConvertedHT, &m.ConvertedTTC, &m.ConvertedTVA,
		&m.USDHT, &m.USDTTC, &m.USDTVA,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no invoice summary for document " + documentID)
		}
		return nil, apperrors.NewAppError(500, "failed to get invoice summary", err)
	}

	summary := mapping.ToDomainInvoiceSummary(m)
	return &summary, nil
}

// SaveDocument persists a new document.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)

	query := `
		INSERT INTO documents (
			document_id, case_file_id, filename, original_filename, filename_stem,
			category, status, uploaded_at, summary_amount, ai_amount, ai_currency_code,
			exchange_rate, converted_currency_code, rate_effective_date, is_duplicate,
			is_forced, original_document_id, rejection_reason,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.CaseFileID, m.Filename, m.OriginalFilename, filenames.NormalizeStem(m.OriginalFilename),
		m.Category, m.Status, m.UploadedAt, m.SummaryAmount, m.AIAmount, m.AICurrencyCode,
		m.ExchangeRate, m.ConvertedCurrencyCode, m.RateEffectiveDate, m.IsDuplicate,
		m.IsForced, m.OriginalDocumentID, m.RejectionReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save document", err)
	}
	return nil
}

// UpdateDocumentStatus moves a document to the given status. The reason is
// stored for REJECTED documents and cleared otherwise.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, reason string) error {
	if status != domain.StatusRejected {
		reason = ""
	}
	query := `
		UPDATE documents
		SET status = $1, rejection_reason = $2, last_updated_at = $3
		WHERE document_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), reason, time.Now().UTC(), documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document with ID " + documentID + " not found")
	}
	return nil
}

// UpdateDocumentConversion persists the AI and conversion fields after a
// successful extraction.
func (r *PgxDocumentRepository) UpdateDocumentConversion(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)

	query := `
		UPDATE documents
		SET summary_amount = $1, ai_amount = $2, ai_currency_code = $3,
			exchange_rate = $4, converted_currency_code = $5, rate_effective_date = $6,
			last_updated_at = $7
		WHERE document_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SummaryAmount, m.AIAmount, m.AICurrencyCode,
		m.ExchangeRate, m.ConvertedCurrencyCode, m.RateEffectiveDate,
		time.Now().UTC(), m.DocumentID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document conversion", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document with ID " + doc.DocumentID + " not found")
	}
	return nil
}

// MarkDocumentDuplicate flags the document as a duplicate of the original and
// moves it to the DUPLICATE terminal status.
func (r *PgxDocumentRepository) MarkDocumentDuplicate(ctx context.Context, documentID, originalDocumentID string) error {
	query := `
		UPDATE documents
		SET status = $1, is_duplicate = TRUE, original_document_id = $2, last_updated_at = $3
		WHERE document_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, string(domain.StatusDuplicate), originalDocumentID, time.Now().UTC(), documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark document duplicate", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document with ID " + documentID + " not found")
	}
	return nil
}

// SaveInvoiceSummary persists a document's invoice summary, replacing an
// earlier one on reprocessing.
func (r *PgxDocumentRepository) SaveInvoiceSummary(ctx context.Context, summary domain.InvoiceSummary) error {
	m := mapping.ToModelInvoiceSummary(summary)

	query := `
		INSERT INTO invoice_summaries (
			document_id, invoice_number, invoice_date, tax_rate,
			total_ht, total_ttc, total_tva,
			converted_ht, converted_ttc, converted_tva,
			usd_ht, usd_ttc, usd_tva
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (document_id) DO UPDATE SET
			invoice_number = EXCLUDED.invoice_number,
			invoice_date = EXCLUDED.invoice_date,
			tax_rate = EXCLUDED.tax_rate,
			total_ht = EXCLUDED.total_ht,
			total_ttc = EXCLUDED.total_ttc,
			total_tva = EXCLUDED.total_tva,
			converted_ht = EXCLUDED.converted_ht,
			converted_ttc = EXCLUDED.converted_ttc,
			converted_tva = EXCLUDED.converted_tva,
			usd_ht = EXCLUDED.usd_ht,
			usd_ttc = EXCLUDED.usd_ttc,
			usd_tva = EXCLUDED.usd_tva;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.InvoiceNumber, m.InvoiceDate, m.TaxRate,
		m.TotalHT, m.TotalTTC, m.TotalTVA,
		m.ConvertedHT, m.ConvertedTTC, m.ConvertedTVA,
		m.USDHT, m.USDTTC, m.USDTVA,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save invoice summary", err)
	}
	return nil
}

func collectDocuments(rows pgx.Rows) ([]domain.Document, error) {
	var docs []domain.Document
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document", err)
		}
		docs = append(docs, mapping.ToDomainDocument(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating documents", err)
	}
	return docs, nil
}
