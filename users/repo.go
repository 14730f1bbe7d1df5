package users

// UserRepo stores quiz API accounts keyed by email.
type UserRepo interface {
	// Insert adds a new user; it returns ErrUserExists when the email is taken.
	Insert(user *User) error
	Delete(email string) error
	GetByEmail(email string) (*User, error)
	GetByID(ID string) (*User, error)
	SetLastLogin(email string) error
	Count() int
}
