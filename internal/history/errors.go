package history

import "errors"

// ErrInvalidRecord is returned when a record lacks the fields every row needs.
var ErrInvalidRecord = errors.New("invalid history record")
