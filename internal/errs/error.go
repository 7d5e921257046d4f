package errs

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrInsufficientStock = errors.New("no stock available for this book")
	ErrNegativeStock     = errors.New("stock cannot be negative")
	ErrBadCredentials    = errors.New("invalid username or password")
)
