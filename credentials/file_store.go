package credentials

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the session record in a single file. Writes go to a temp file
// in the same directory and are renamed over the destination, so readers see
// either the old or the new record.
type FileStore struct {
	path   string
	sealer *Sealer
	log    zerolog.Logger
	mu     sync.RWMutex
}

type FileStoreOption func(*FileStore)

// WithSealer encrypts the record at rest.
func WithSealer(s *Sealer) FileStoreOption {
	return func(fs *FileStore) {
		fs.sealer = s
	}
}

func WithLogger(l zerolog.Logger) FileStoreOption {
	return func(fs *FileStore) {
		fs.log = l
	}
}

// NewFileStore creates the parent directory if needed. The file itself is only
// created on the first Save.
func NewFileStore(path string, opts ...FileStoreOption) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("credentials file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, errors.Wrap(err, "create credentials directory")
	}

	s := &FileStore{
		path: path,
		log:  log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(session Session) error {
	if !session.Complete() {
		return apperrors.ErrIncompleteSession
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	if s.sealer != nil {
		if data, err = s.sealer.Seal(data); err != nil {
			return errors.Wrap(err, "seal session")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(data)
}

func (s *FileStore) Read() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "remove credentials file")
	}
	return nil
}

func (s *FileStore) IsLoggedIn() bool {
	session, err := s.Read()
	if err != nil {
		return false
	}
	return session.HasTokens()
}

func (s *FileStore) read() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, errors.Wrap(err, "read credentials file")
	}

	if s.sealer != nil {
		opened, err := s.sealer.Open(data)
		if err != nil {
			// A record we cannot open is no session at all.
			s.log.Warn().Err(err).Str("path", s.path).Msg("discarding unreadable credentials record")
			return Session{}, nil
		}
		data = opened
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("discarding malformed credentials record")
		return Session{}, nil
	}
	return session, nil
}

func (s *FileStore) replace(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp credentials file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod temp credentials file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp credentials file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync temp credentials file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp credentials file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Wrap(err, "replace credentials file")
	}
	return nil
}
