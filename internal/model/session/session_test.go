package session

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranusri1903/expense-tracker/internal/entity/account"
)

type fakeAccountStorage struct {
	accounts  []account.Account
	saveCalls int
	loadErr   error
	saveErr   error
}

func (f *fakeAccountStorage) LoadAccounts(_ context.Context) ([]account.Account, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.accounts, nil
}

func (f *fakeAccountStorage) SaveAccounts(_ context.Context, accounts []account.Account) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.accounts = accounts
	return nil
}

type fakeRecordStore struct {
	loadedUser string
	loadCalls  int
	saveCalls  int
	clearCalls int
}

func (f *fakeRecordStore) Load(_ context.Context, username string) error {
	f.loadCalls++
	f.loadedUser = username
	return nil
}

func (f *fakeRecordStore) Save(_ context.Context) error {
	f.saveCalls++
	return nil
}

func (f *fakeRecordStore) Clear() {
	f.clearCalls++
	f.loadedUser = ""
}

func controller(storage *fakeAccountStorage, store *fakeRecordStore) *Controller {
	return NewController(context.Background(), storage, store)
}

func Test_OnRegister_ShouldPersistAccountWithoutLogin(t *testing.T) {
	storage := &fakeAccountStorage{}
	c := controller(storage, &fakeRecordStore{})

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))

	_, ok := c.ActiveUser()
	assert.False(t, ok)
	require.Len(t, storage.accounts, 1)
	assert.Equal(t, account.Account{Username: "alice", Password: "pw1"}, storage.accounts[0])
}

func Test_OnDuplicateRegister_ShouldFailAndKeepRegistryUnchanged(t *testing.T) {
	storage := &fakeAccountStorage{}
	c := controller(storage, &fakeRecordStore{})

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))
	err := c.Register(context.Background(), "alice", "pw2")

	assert.True(t, errors.Is(err, ErrDuplicateUsername))
	require.Len(t, storage.accounts, 1)
	assert.Equal(t, "pw1", storage.accounts[0].Password)
}

func Test_OnRegister_ShouldRejectEmptyCredentials(t *testing.T) {
	c := controller(&fakeAccountStorage{}, &fakeRecordStore{})

	assert.True(t, errors.Is(c.Register(context.Background(), "", "pw"), ErrEmptyCredential))
	assert.True(t, errors.Is(c.Register(context.Background(), "alice", ""), ErrEmptyCredential))
	assert.True(t, errors.Is(c.Register(context.Background(), "   ", "pw"), ErrEmptyCredential))
}

func Test_OnUsernames_ShouldBeCaseSensitive(t *testing.T) {
	c := controller(&fakeAccountStorage{}, &fakeRecordStore{})

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))
	assert.NoError(t, c.Register(context.Background(), "Alice", "pw2"))
}

func Test_OnLogin_ShouldLoadTheUsersRecords(t *testing.T) {
	store := &fakeRecordStore{}
	c := controller(&fakeAccountStorage{}, store)

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))
	require.NoError(t, c.Login(context.Background(), "alice", "pw1"))

	user, ok := c.ActiveUser()
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "alice", store.loadedUser)
	assert.Equal(t, 1, store.loadCalls)
}

func Test_OnWrongPassword_ShouldFailWithoutSession(t *testing.T) {
	store := &fakeRecordStore{}
	c := controller(&fakeAccountStorage{}, store)

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))
	err := c.Login(context.Background(), "alice", "wrong")

	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, ok := c.ActiveUser()
	assert.False(t, ok)
	assert.Equal(t, 0, store.loadCalls)
}

func Test_OnUnknownUser_ShouldFailWithInvalidCredentials(t *testing.T) {
	c := controller(&fakeAccountStorage{}, &fakeRecordStore{})

	err := c.Login(context.Background(), "nobody", "pw")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func Test_OnSecondLogin_ShouldBeRejected(t *testing.T) {
	c := controller(&fakeAccountStorage{}, &fakeRecordStore{})

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))
	require.NoError(t, c.Login(context.Background(), "alice", "pw1"))

	err := c.Login(context.Background(), "alice", "pw1")
	assert.True(t, errors.Is(err, ErrAlreadyLoggedIn))
}

func Test_OnLogout_ShouldSaveClearAndReturnToAnonymous(t *testing.T) {
	store := &fakeRecordStore{}
	c := controller(&fakeAccountStorage{}, store)

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))
	require.NoError(t, c.Login(context.Background(), "alice", "pw1"))
	require.NoError(t, c.Logout(context.Background()))

	_, ok := c.ActiveUser()
	assert.False(t, ok)
	assert.Equal(t, 1, store.saveCalls)
	assert.Equal(t, 1, store.clearCalls)
}

func Test_OnAnonymousLogout_ShouldFail(t *testing.T) {
	c := controller(&fakeAccountStorage{}, &fakeRecordStore{})

	err := c.Logout(context.Background())
	assert.True(t, errors.Is(err, ErrNotAuthenticated))
}

func Test_OnSwitchingUsers_ShouldReloadStorePerUser(t *testing.T) {
	store := &fakeRecordStore{}
	c := controller(&fakeAccountStorage{}, store)

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))
	require.NoError(t, c.Register(context.Background(), "bob", "pw2"))

	require.NoError(t, c.Login(context.Background(), "alice", "pw1"))
	require.NoError(t, c.Logout(context.Background()))
	require.NoError(t, c.Login(context.Background(), "bob", "pw2"))

	assert.Equal(t, "bob", store.loadedUser)
	assert.Equal(t, 1, store.clearCalls)
	assert.Equal(t, 2, store.loadCalls)
}

func Test_OnUnavailableAccountStorage_ShouldStartWithEmptyRegistry(t *testing.T) {
	storage := &fakeAccountStorage{loadErr: errors.New("medium missing")}
	c := controller(storage, &fakeRecordStore{})

	err := c.Login(context.Background(), "alice", "pw1")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	storage.loadErr = nil
	assert.NoError(t, c.Register(context.Background(), "alice", "pw1"))
}

func Test_OnAccountSaveFailure_ShouldStillRegisterForTheSession(t *testing.T) {
	storage := &fakeAccountStorage{saveErr: errors.New("disk full")}
	c := controller(storage, &fakeRecordStore{})

	require.NoError(t, c.Register(context.Background(), "alice", "pw1"))
	assert.NoError(t, c.Login(context.Background(), "alice", "pw1"))
}
