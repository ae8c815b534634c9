package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	// postgres driver
	_ "github.com/lib/pq"

	"github.com/pranusri1903/expense-tracker/internal/entity/account"
	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
	"github.com/pranusri1903/expense-tracker/internal/logger"
)

const dsnTemplate = "user=%s password=%s host=%s port=%d dbname=%s sslmode=disable"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresConfig interface {
	Host() string
	Port() int
	Username() string
	Password() string
	Database() string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config postgresConfig) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Port(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	s := &PostgresStorage{db}
	if err = s.ensureSchema(); err != nil {
		return nil, errors.Wrap(err, "cannot prepare schema")
	}
	return s, nil
}

func (s *PostgresStorage) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			seq      SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			username     TEXT NOT NULL,
			pos          INT NOT NULL,
			expense_date DATE NOT NULL,
			category     TEXT NOT NULL,
			description  TEXT NOT NULL,
			amount       NUMERIC(14, 2) NOT NULL,
			PRIMARY KEY (username, pos)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStorage) LoadAccounts(ctx context.Context) ([]account.Account, error) {
	query := psql.Select("username", "password").
		From("accounts").
		OrderBy("seq")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load accounts")
	}
	defer closeRows(rows)

	accounts := make([]account.Account, 0)
	for rows.Next() {
		var acc account.Account
		if err = rows.Scan(&acc.Username, &acc.Password); err != nil {
			return nil, errors.Wrap(err, "load accounts")
		}
		accounts = append(accounts, acc)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "load accounts")
	}
	return accounts, nil
}

func (s *PostgresStorage) SaveAccounts(ctx context.Context, accounts []account.Account) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM accounts"); err != nil {
			return err
		}
		if len(accounts) == 0 {
			return nil
		}
		query := psql.Insert("accounts").Columns("username", "password")
		for _, acc := range accounts {
			query = query.Values(acc.Username, acc.Password)
		}
		_, err := query.RunWith(tx).ExecContext(ctx)
		return err
	})
}

func (s *PostgresStorage) LoadExpenses(ctx context.Context, username string) ([]expense.Record, error) {
	query := psql.Select("expense_date", "category", "description", "amount").
		From("expenses").
		Where(sq.Eq{"username": username}).
		OrderBy("pos")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load expenses")
	}
	defer closeRows(rows)

	records := make([]expense.Record, 0)
	for rows.Next() {
		var rec expense.Record
		var category string
		if err = rows.Scan(&rec.Date, &category, &rec.Description, &rec.Amount); err != nil {
			return nil, errors.Wrap(err, "load expenses")
		}
		if rec.Category, err = expense.ParseCategory(category); err != nil {
			return nil, errors.Wrap(err, "load expenses")
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "load expenses")
	}
	return records, nil
}

func (s *PostgresStorage) SaveExpenses(ctx context.Context, username string, records []expense.Record) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		del := psql.Delete("expenses").Where(sq.Eq{"username": username})
		if _, err := del.RunWith(tx).ExecContext(ctx); err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		query := psql.Insert("expenses").
			Columns("username", "pos", "expense_date", "category", "description", "amount")
		for pos, rec := range records {
			query = query.Values(username, pos, rec.Date, string(rec.Category), rec.Description, rec.Amount)
		}
		_, err := query.RunWith(tx).ExecContext(ctx)
		return err
	})
}

// inTx runs fn in a transaction so the whole-collection overwrite is atomic:
// the previous collection survives any mid-save failure.
func (s *PostgresStorage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("transaction rollback failed", zap.Error(rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.Error("error closing rows", zap.Error(err))
	}
}
