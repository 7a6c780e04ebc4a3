package service

import "errors"

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrConflict          = errors.New("conflict")           // 409
	ErrIllegalTransition = errors.New("illegal transition") // 409
	ErrInsufficientStock = errors.New("insufficient stock") // 409
	ErrUnauthorized      = errors.New("unauthorized")       // 401
)
