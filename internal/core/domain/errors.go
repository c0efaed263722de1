package domain

import "errors"

// Declaration errors
var (
	ErrDeclarationNotFound = errors.New("declaration not found")
	ErrDuplicatePassportNo = errors.New("passport number already registered")
	ErrInvalidStatus       = errors.New("invalid status value")
)

// Admin errors
var (
	ErrAdminNotFound = errors.New("admin not found")
)
