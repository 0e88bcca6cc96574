package session

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConfigMissing = errors.New("provider configuration missing")
)
