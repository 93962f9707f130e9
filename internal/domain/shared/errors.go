package shared

import "errors"

// Base error kinds. Entity packages wrap these so callers can ask
// errors.Is(err, shared.ErrNotFound) without knowing which entity failed.
var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
)
