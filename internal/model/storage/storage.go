// Package storage provides the persistence backends. All of them share
// whole-collection overwrite semantics: every save rewrites the complete
// per-user collection, and a load with no backing data yields an empty
// collection rather than an error.
package storage

import (
	"context"

	"github.com/pranusri1903/expense-tracker/internal/entity/account"
	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
)

type Storage interface {
	LoadAccounts(ctx context.Context) ([]account.Account, error)
	SaveAccounts(ctx context.Context, accounts []account.Account) error
	LoadExpenses(ctx context.Context, username string) ([]expense.Record, error)
	SaveExpenses(ctx context.Context, username string, records []expense.Record) error
}
