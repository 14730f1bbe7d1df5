package credentials

// Store persists the single session record of this installation.
// Save and Clear replace the whole record; Read never observes a partial write.
type Store interface {
	// Save overwrites any previous session. Incomplete sessions are rejected
	// with ErrIncompleteSession and the stored record is left untouched.
	Save(session Session) error

	// Read returns the stored session, or the zero Session when none is stored.
	Read() (Session, error)

	// Clear removes the record. Clearing an empty store is not an error.
	Clear() error

	// IsLoggedIn is true iff both tokens are present.
	IsLoggedIn() bool
}
