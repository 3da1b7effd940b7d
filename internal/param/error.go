package param

import "errors"

var (
	ErrParamNotFound = errors.New("param not found")
)
