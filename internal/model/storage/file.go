package storage

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pranusri1903/expense-tracker/internal/entity/account"
	"github.com/pranusri1903/expense-tracker/internal/entity/expense"
)

// fileFormatVersion is written into every document so the on-disk format
// can be migrated later. Documents with a different version are a read
// failure, not silently misparsed data.
const fileFormatVersion = 1

const (
	accountsFileName = "accounts.json"
	expensesDirName  = "expenses"
	dirPerm          = 0o755
)

type fileConfig interface {
	Dir() string
}

type FileStorage struct {
	dir string
}

func NewFileStorage(config fileConfig) (*FileStorage, error) {
	dir := config.Dir()
	if err := os.MkdirAll(filepath.Join(dir, expensesDirName), dirPerm); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}
	return &FileStorage{dir: dir}, nil
}

type accountsDocument struct {
	Version  int          `json:"version"`
	Accounts []accountRow `json:"accounts"`
}

type accountRow struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type expensesDocument struct {
	Version  int          `json:"version"`
	Expenses []expenseRow `json:"expenses"`
}

type expenseRow struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

func (s *FileStorage) LoadAccounts(_ context.Context) ([]account.Account, error) {
	var doc accountsDocument
	ok, err := s.readDocument(s.accountsPath(), &doc)
	if err != nil {
		return nil, errors.Wrap(err, "load accounts")
	}
	if !ok {
		return []account.Account{}, nil
	}

	accounts := make([]account.Account, 0, len(doc.Accounts))
	for _, row := range doc.Accounts {
		accounts = append(accounts, account.Account{Username: row.Username, Password: row.Password})
	}
	return accounts, nil
}

func (s *FileStorage) SaveAccounts(_ context.Context, accounts []account.Account) error {
	doc := accountsDocument{Version: fileFormatVersion, Accounts: make([]accountRow, 0, len(accounts))}
	for _, acc := range accounts {
		doc.Accounts = append(doc.Accounts, accountRow{Username: acc.Username, Password: acc.Password})
	}
	return errors.Wrap(s.writeDocument(s.accountsPath(), doc), "save accounts")
}

func (s *FileStorage) LoadExpenses(_ context.Context, username string) ([]expense.Record, error) {
	var doc expensesDocument
	ok, err := s.readDocument(s.expensesPath(username), &doc)
	if err != nil {
		return nil, errors.Wrap(err, "load expenses")
	}
	if !ok {
		return []expense.Record{}, nil
	}

	records := make([]expense.Record, 0, len(doc.Expenses))
	for _, row := range doc.Expenses {
		rec, err := decodeExpenseRow(row)
		if err != nil {
			return nil, errors.Wrap(err, "load expenses")
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *FileStorage) SaveExpenses(_ context.Context, username string, records []expense.Record) error {
	doc := expensesDocument{Version: fileFormatVersion, Expenses: make([]expenseRow, 0, len(records))}
	for _, rec := range records {
		doc.Expenses = append(doc.Expenses, expenseRow{
			Date:        expense.FormatDate(rec.Date),
			Category:    string(rec.Category),
			Description: rec.Description,
			Amount:      rec.Amount.StringFixed(2),
		})
	}
	return errors.Wrap(s.writeDocument(s.expensesPath(username), doc), "save expenses")
}

func decodeExpenseRow(row expenseRow) (expense.Record, error) {
	date, err := expense.ParseDate(row.Date)
	if err != nil {
		return expense.Record{}, err
	}
	category, err := expense.ParseCategory(row.Category)
	if err != nil {
		return expense.Record{}, err
	}
	amount, err := expense.ParseAmount(row.Amount)
	if err != nil {
		return expense.Record{}, err
	}
	return expense.Record{
		Date:        date,
		Category:    category,
		Description: row.Description,
		Amount:      amount,
	}, nil
}

func (s *FileStorage) accountsPath() string {
	return filepath.Join(s.dir, accountsFileName)
}

func (s *FileStorage) expensesPath(username string) string {
	// Usernames are arbitrary strings; escape them into safe file names.
	return filepath.Join(s.dir, expensesDirName, url.PathEscape(username)+".json")
}

type versioned interface {
	version() int
}

func (d accountsDocument) version() int { return d.Version }
func (d expensesDocument) version() int { return d.Version }

// readDocument reads and decodes a JSON document. The second result is
// false when the file does not exist, which is not an error.
func (s *FileStorage) readDocument(path string, doc versioned) (bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "read file")
	}
	if err = json.Unmarshal(raw, doc); err != nil {
		return false, errors.Wrap(err, "decode json")
	}
	if doc.version() != fileFormatVersion {
		return false, errors.Errorf("unsupported format version %d", doc.version())
	}
	return true, nil
}

// writeDocument overwrites path atomically: the document is written to a
// temporary file in the same directory and renamed over the target, so a
// failed save leaves the previous contents untouched.
func (s *FileStorage) writeDocument(path string, doc any) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode json")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tracker-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "rename temp file")
}
