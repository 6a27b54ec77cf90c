package controllers

import (
	"strings"
	"unicode/utf8"

	"authscreen/identity"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is counted in characters (runes), not bytes.
const MinPasswordLength = identity.MinPasswordLength

type credentials struct {
	Email    string `validate:"required,email,dotted_domain"`
	Password string `validate:"password_length"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("dotted_domain", dottedDomain); err != nil {
		panic("controllers: register dotted_domain: " + err.Error())
	}
	if err := v.RegisterValidation("password_length", passwordLength); err != nil {
		panic("controllers: register password_length: " + err.Error())
	}
	return v
}

func passwordLength(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) >= MinPasswordLength
}

// dottedDomain requires at least one dot inside the part after the last "@".
func dottedDomain(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// Validate reports whether the pair may be sent to the identity provider:
// a non-empty, well-formed email whose domain has a dot, and a password of
// at least MinPasswordLength characters. It has no side effects.
func Validate(email, password string) bool {
	return validate.Struct(credentials{Email: email, Password: password}) == nil
}
