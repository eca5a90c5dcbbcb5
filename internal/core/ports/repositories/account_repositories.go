package repositories

import (
	"context"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
)

// AccountReader defines read operations for a case file's chart of accounts.
type AccountReader interface {
	// FindAccountByNumber retrieves an account by its number within a case file.
	FindAccountByNumber(ctx context.Context, caseFileID, number string) (*domain.Account, error)

	// ListAccountsByCaseFile returns the full chart of accounts of a case file.
	ListAccountsByCaseFile(ctx context.Context, caseFileID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for a case file's chart of accounts.
type AccountWriter interface {
	// CreateAccount persists a new account. Returns apperrors.ErrDuplicate when
	// the (case file, number) pair already exists.
	CreateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
