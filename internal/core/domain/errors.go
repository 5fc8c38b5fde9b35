package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrClassifier         = errors.New("classifier failure")
	ErrStorage            = errors.New("storage failure")
)
