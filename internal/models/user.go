package models

// MasterUsername identifies the single privileged operator account.
const MasterUsername = "master"

// User represents an operator stored in the users table. Passwords are kept
// only as bcrypt hashes.
type User struct {
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// IsMaster reports whether the acting username holds the master role. Every
// gated mutation evaluates this before touching the store.
func IsMaster(actor string) bool {
	return actor == MasterUsername
}

// CreateUserRequest registers a new operator account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=4"`
}
