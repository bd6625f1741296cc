package domain

import "errors"

var (
	ErrDuplicateRequest = errors.New("request with this number is already active")
	ErrRequestNotFound  = errors.New("request not found")
)
