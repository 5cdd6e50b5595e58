package resultfile

import "errors"

var (
	ErrInvalidIdentifier = errors.New("invalid driver identifier")
	ErrTimestamp         = errors.New("invalid filename timestamp")
)
