package openapi

import (
	"errors"
	"regexp"
)

var ErrInvalidAdmin = errors.New("invalid administrador: must be the string \"true\" or \"false\"")

var ErrInvalidUserID = errors.New("invalid _id: must be exactly 16 alphanumeric characters")

var userIDValidationRegex = regexp.MustCompile("^[A-Za-z0-9]{16}$")

// Admin is the administrator flag, which the API encodes as a string.
type Admin string

const (
	AdminTrue  Admin = "true"
	AdminFalse Admin = "false"
)

// AdminFromBool converts a boolean into its wire representation.
func AdminFromBool(admin bool) Admin {
	if admin {
		return AdminTrue
	}

	return AdminFalse
}

func (a *Admin) UnmarshalText(text []byte) error {
	switch Admin(text) {
	case AdminTrue, AdminFalse:
		*a = Admin(text)
	default:
		return ErrInvalidAdmin
	}

	return nil
}

// ValidUserID reports whether id has the shape the API assigns.
func ValidUserID(id string) bool {
	return userIDValidationRegex.MatchString(id)
}
