package spaces

import "errors"

var (
	ErrSpaceNotFound = errors.New("spaces: space not found")
	ErrInvalidInput  = errors.New("spaces: invalid input")
	ErrInternal      = errors.New("spaces: internal error")
)
