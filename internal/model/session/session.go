// Package session manages the Anonymous/Authenticated state machine and
// the active-user binding of the record store.
package session

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pranusri1903/expense-tracker/internal/entity/account"
	"github.com/pranusri1903/expense-tracker/internal/logger"
)

var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrEmptyCredential    = errors.New("empty username or password")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrAlreadyLoggedIn    = errors.New("already logged in")
)

type accountStorage interface {
	LoadAccounts(ctx context.Context) ([]account.Account, error)
	SaveAccounts(ctx context.Context, accounts []account.Account) error
}

type recordStore interface {
	Load(ctx context.Context, username string) error
	Save(ctx context.Context) error
	Clear()
}

type Controller struct {
	storage  accountStorage
	store    recordStore
	accounts []account.Account
	current  string
}

// NewController loads the registered accounts up front. An unavailable
// persistence medium degrades to an empty account set; the failure is
// logged, never fatal.
func NewController(ctx context.Context, storage accountStorage, store recordStore) *Controller {
	accounts, err := storage.LoadAccounts(ctx)
	if err != nil {
		logger.Warn("loading accounts failed, starting with empty registry", zap.Error(err))
		accounts = make([]account.Account, 0)
	}
	return &Controller{
		storage:  storage,
		store:    store,
		accounts: accounts,
	}
}

// Register creates and persists a new account. It does not log the new
// user in. A failed registration leaves the registry untouched.
func (c *Controller) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.Wrap(ErrEmptyCredential, "register")
	}
	if c.usernameExists(username) {
		return errors.Wrapf(ErrDuplicateUsername, "%q", username)
	}

	c.accounts = append(c.accounts, account.Account{Username: username, Password: password})
	if err := c.storage.SaveAccounts(ctx, c.accounts); err != nil {
		// Non-fatal: the account exists for this process lifetime, the
		// failed write left the previous registry file intact.
		logger.Warn("saving accounts failed", zap.Error(err), zap.String("username", username))
	}
	return nil
}

// Login transitions Anonymous -> Authenticated and loads the user's
// records. Username and password are both compared verbatim.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if c.current != "" {
		return errors.Wrap(ErrAlreadyLoggedIn, "login")
	}
	username = strings.TrimSpace(username)
	if !c.credentialsMatch(username, password) {
		return errors.Wrap(ErrInvalidCredentials, "login")
	}

	c.current = username
	if err := c.store.Load(ctx, username); err != nil {
		logger.Warn("loading expenses failed, starting with empty collection",
			zap.Error(err), zap.String("username", username))
	}
	return nil
}

// Logout persists the active user's records, clears the store and
// transitions back to Anonymous.
func (c *Controller) Logout(ctx context.Context) error {
	if c.current == "" {
		return errors.Wrap(ErrNotAuthenticated, "logout")
	}
	if err := c.store.Save(ctx); err != nil {
		logger.Warn("saving expenses failed on logout",
			zap.Error(err), zap.String("username", c.current))
	}
	c.store.Clear()
	c.current = ""
	return nil
}

// ActiveUser returns the authenticated username, or false when Anonymous.
func (c *Controller) ActiveUser() (string, bool) {
	return c.current, c.current != ""
}

func (c *Controller) usernameExists(username string) bool {
	for _, acc := range c.accounts {
		if acc.Username == username {
			return true
		}
	}
	return false
}

func (c *Controller) credentialsMatch(username, password string) bool {
	for _, acc := range c.accounts {
		if acc.Username == username && acc.Password == password {
			return true
		}
	}
	return false
}
