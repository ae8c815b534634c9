package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	// pure-Go sqlite driver
	_ "modernc.org/sqlite"

	"github.com/pranusri1903/expense-tracker/internal/entity/account"
	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
)

type sqliteConfig interface {
	Path() string
}

type SqliteStorage struct {
	db *sql.DB
}

func NewSqliteStorage(config sqliteConfig) (*SqliteStorage, error) {
	path := config.Path()
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, errors.Wrap(err, "create db directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	s := &SqliteStorage{db}
	if err = s.ensureSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "cannot prepare schema")
	}
	return s, nil
}

func (s *SqliteStorage) Close() error {
	return s.db.Close()
}

func (s *SqliteStorage) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			seq      INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			username     TEXT NOT NULL,
			pos          INTEGER NOT NULL,
			expense_date TEXT NOT NULL,
			category     TEXT NOT NULL,
			description  TEXT NOT NULL,
			amount       TEXT NOT NULL,
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

func (s *SqliteStorage) LoadAccounts(ctx context.Context) ([]account.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT username, password FROM accounts ORDER BY seq")
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

func (s *SqliteStorage) SaveAccounts(ctx context.Context, accounts []account.Account) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM accounts"); err != nil {
			return err
		}
		for _, acc := range accounts {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO accounts (username, password) VALUES (?, ?)",
				acc.Username, acc.Password)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SqliteStorage) LoadExpenses(ctx context.Context, username string) ([]expense.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_date, category, description, amount
		 FROM expenses WHERE username = ? ORDER BY pos`, username)
	if err != nil {
		return nil, errors.Wrap(err, "load expenses")
	}
	defer closeRows(rows)

	records := make([]expense.Record, 0)
	for rows.Next() {
		var row expenseRow
		if err = rows.Scan(&row.Date, &row.Category, &row.Description, &row.Amount); err != nil {
			return nil, errors.Wrap(err, "load expenses")
		}
		rec, err := decodeExpenseRow(row)
		if err != nil {
			return nil, errors.Wrap(err, "load expenses")
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "load expenses")
	}
	return records, nil
}

func (s *SqliteStorage) SaveExpenses(ctx context.Context, username string, records []expense.Record) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM expenses WHERE username = ?", username); err != nil {
			return err
		}
		for pos, rec := range records {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO expenses (username, pos, expense_date, category, description, amount)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				username, pos, expense.FormatDate(rec.Date), string(rec.Category),
				rec.Description, rec.Amount.StringFixed(2))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SqliteStorage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}
