package pgsql

import (
	"context"
	"errors"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCaseFileRepository implements the case file ports using pgxpool.
type PgxCaseFileRepository struct {
	BaseRepository
}

// NewPgxCaseFileRepository creates a new PgxCaseFileRepository.
func NewPgxCaseFileRepository(db *pgxpool.Pool) *PgxCaseFileRepository {
	return &PgxCaseFileRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.CaseFileRepositoryFacade = (*PgxCaseFileRepository)(nil)

// FindCaseFileByID retrieves a case file by its ID.
func (r *PgxCaseFileRepository) FindCaseFileByID(ctx context.Context, caseFileID string) (*domain.CaseFile, error) {
	query := `
		SELECT case_file_id, name, currency_code,
			created_at, created_by, last_updated_at, last_updated_by
		FROM case_files
		WHERE case_file_id = $1;
	`

	var m models.CaseFile
	err := r.Pool.QueryRow(ctx, query, caseFileID).Scan(
		&m.CaseFileID, &m.Name, &m.CurrencyCode,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("case file with ID " + caseFileID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get case file by ID", err)
	}

	caseFile := mapping.ToDomainCaseFile(m)
	return &caseFile, nil
}

// SaveCaseFile persists a new case file.
func (r *PgxCaseFileRepository) SaveCaseFile(ctx context.Context, caseFile domain.CaseFile) error {
	m := mapping.ToModelCaseFile(caseFile)

	query := `
		INSERT INTO case_files (
			case_file_id, name, currency_code,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CaseFileID, m.Name, m.CurrencyCode,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save case file", err)
	}
	return nil
}
