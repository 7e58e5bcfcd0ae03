package domain

import "errors"

var (
	// ErrValidation covers malformed input: empty required fields, bad roles,
	// unknown tables, records that fail their table schema.
	ErrValidation = errors.New("validation failed")

	// ErrAdminExists rejects a second bootstrap once the sole admin account exists.
	ErrAdminExists = errors.New("admin account already exists")

	// ErrDuplicateUsername rejects a username collision anywhere in the
	// shared admin+staff namespace.
	ErrDuplicateUsername = errors.New("username already taken")

	ErrAccountNotFound = errors.New("account not found")
	ErrRecordNotFound  = errors.New("record not found")
	ErrForbidden       = errors.New("access forbidden")

	// ErrInvalidCredentials is the single generic authentication failure.
	// Wrong password and unknown user are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCorruptStore flags backing storage that is unreadable or malformed.
	// Callers recover by treating the store as empty where safe.
	ErrCorruptStore = errors.New("credential store corrupt")

	// ErrStorage flags a write failure in the backing store.
	ErrStorage = errors.New("storage write failed")
)
