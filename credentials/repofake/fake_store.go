package credentialsfake

import (
	"sync"

	"github.com/jrsteele09/go-auth-client/credentials"
	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

var _ credentials.Store = (*FakeStore)(nil)

type FakeStore struct {
	session credentials.Session
	saves   int
	clears  int
	saveErr error
	lock    sync.RWMutex
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// NewFakeStoreWith returns a store already holding the given session.
func NewFakeStoreWith(session credentials.Session) *FakeStore {
	return &FakeStore{session: session}
}

func (fs *FakeStore) Save(session credentials.Session) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.saveErr != nil {
		return fs.saveErr
	}
	if !session.Complete() {
		return apperrors.ErrIncompleteSession
	}
	fs.session = session
	fs.saves++
	return nil
}

func (fs *FakeStore) Read() (credentials.Session, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.session, nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.session = credentials.Session{}
	fs.clears++
	return nil
}

func (fs *FakeStore) IsLoggedIn() bool {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.session.HasTokens()
}

// FailSaves makes every following Save return err.
func (fs *FakeStore) FailSaves(err error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.saveErr = err
}

func (fs *FakeStore) Saves() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.saves
}

func (fs *FakeStore) Clears() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.clears
}
