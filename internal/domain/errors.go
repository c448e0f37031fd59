package domain

import "errors"

// ErrInvalidInput covers malformed cart lines and other bad construction
// input. Lifecycle guard errors live with the order service.
var ErrInvalidInput = errors.New("invalid input")
