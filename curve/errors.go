package curve

import "errors"

var (
	ErrConfig       = errors.New("invalid curve config")
	ErrPrecondition = errors.New("curve precondition violated")
)
