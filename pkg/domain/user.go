package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an account holder. Password always stores a bcrypt hash; the
// cleartext credential never leaves the signup/login path.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// NewUser creates a user with a freshly hashed credential.
func NewUser(username, fullName, password string) (*User, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		FullName:  fullName,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewUserFromData hydrates a User from stored data.
func NewUserFromData(id uuid.UUID, username, fullName, password string, created, updated time.Time) *User {
	return &User{
		ID:        id,
		Username:  username,
		FullName:  fullName,
		Password:  password,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

// SetPassword replaces the stored credential with a hash of the new one.
func (u *User) SetPassword(password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// CheckPassword verifies a cleartext credential against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// Redacted returns a copy safe to hand to read paths; the credential hash
// is stripped so it cannot leak through any serializer.
func (u *User) Redacted() *User {
	masked := *u
	masked.Password = ""
	return &masked
}
