package identity

import (
	"errors"
	"strings"
)

// Error codes returned by the Identity Toolkit API. The memory provider
// reuses them so both backends fail the same way.
const (
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeEmailNotFound      = "EMAIL_NOT_FOUND"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidCredentials = "INVALID_LOGIN_CREDENTIALS"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeUserDisabled       = "USER_DISABLED"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS_TRY_LATER"
	CodeOperationNotAllow  = "OPERATION_NOT_ALLOWED"
	CodeInvalidAPIKey      = "INVALID_API_KEY"
	CodeNetwork            = "NETWORK_REQUEST_FAILED"
)

// descriptions mirror the texts the Firebase client SDKs attach to these
// codes.
var descriptions = map[string]string{
	CodeEmailExists:        "The email address is already in use by another account.",
	CodeEmailNotFound:      "There is no user record corresponding to this identifier. The user may have been deleted.",
	CodeInvalidPassword:    "The password is invalid or the user does not have a password.",
	CodeInvalidCredentials: "The supplied auth credential is incorrect, malformed or has expired.",
	CodeInvalidEmail:       "The email address is badly formatted.",
	CodeUserDisabled:       "The user account has been disabled by an administrator.",
	CodeWeakPassword:       "The given password is invalid. [ Password should be at least 6 characters ]",
	CodeTooManyAttempts:    "We have blocked all requests from this device due to unusual activity. Try again later.",
	CodeOperationNotAllow:  "This operation is not allowed. Enable the sign-in provider in the console.",
	CodeInvalidAPIKey:      "An internal error has occurred. [ API key not valid. Please pass a valid API key. ]",
	CodeNetwork:            "A network error (such as timeout, interrupted connection or unreachable host) has occurred.",
}

// Error is a failed provider call. Message is the human-readable description
// and may be empty when the provider gave none.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return "identity: " + e.Code
	case e.Cause != nil:
		return "identity: " + e.Cause.Error()
	default:
		return "identity: unknown failure"
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Code != "" && e.Code == t.Code
	}
	return false
}

// ErrEmailExists and friends are comparison targets for errors.Is.
var (
	ErrEmailExists        = &Error{Code: CodeEmailExists}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials}
)

// NewError builds an Error for code with the stock description, or with
// fallback when the code has none.
func NewError(code, fallback string) *Error {
	msg, ok := descriptions[code]
	if !ok {
		msg = strings.TrimSpace(fallback)
	}
	return &Error{Code: code, Message: msg}
}

// Describe returns the human-readable message carried by err, or "" when
// there is none.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Message
	}
	return strings.TrimSpace(err.Error())
}
