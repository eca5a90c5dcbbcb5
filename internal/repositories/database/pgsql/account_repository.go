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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountRepository implements the account ports using pgxpool.
type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new PgxAccountRepository.
func NewPgxAccountRepository(db *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByNumber retrieves an account by its number within a case file.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, caseFileID, number string) (*domain.Account, error) {
	query := `
		SELECT account_id, case_file_id, number, label,
			created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE case_file_id = $1 AND number = $2;
	`

	var m models.Account
	err := r.Pool.QueryRow(ctx, query, caseFileID, number).Scan(
		&m.AccountID, &m.CaseFileID, &m.Number, &m.Label,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + number + " not found in case file " + caseFileID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account by number", err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccountsByCaseFile returns the full chart of accounts of a case file.
func (r *PgxAccountRepository) ListAccountsByCaseFile(ctx context.Context, caseFileID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, case_file_id, number, label,
			created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE case_file_id = $1
		ORDER BY number ASC;
	`

	rows, err := r.Pool.Query(ctx, query, caseFileID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var m models.Account
		err := rows.Scan(
			&m.AccountID, &m.CaseFileID, &m.Number, &m.Label,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accounts", err)
	}
	return accounts, nil
}

// CreateAccount persists a new account. Returns apperrors.ErrDuplicate when
// the (case file, number) pair already exists.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (
			account_id, case_file_id, number, label,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.CaseFileID, m.Number, m.Label,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "account "+account.Number+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to create account", err)
	}
	return nil
}
