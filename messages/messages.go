// Package messages holds the user-facing text of the auth screen and
// resolves it for the configured language.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. They double as the en-US text so an unregistered key still
// renders something readable.
const (
	LoginSucceeded    = "Login succeeded!"
	RegisterSucceeded = "Account created successfully!"
	InvalidInput      = "Please enter a valid e-mail and a password of at least 6 characters."
	UnknownError      = "Unknown error."

	LoginTitle    = "Login"
	RegisterTitle = "Create Account"
	ToRegister    = "Don't have an account? Create account"
	ToLogin       = "Already have an account? Log in"
	EmailLabel    = "E-mail"
	PasswordLabel = "Password"

	LoadingInit       = "Initializing…"
	LoadingConfig     = "Checking configuration…"
	LoadingContacting = "Contacting identity provider…"
	LoadingConnected  = "Connected  ✓"
	ProviderDown      = "Identity provider not reachable — %s"
)

// DefaultTag is used when the configured locale is empty or unsupported.
var DefaultTag = language.BrazilianPortuguese

var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.AmericanEnglish,
}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[string]string{
	language.BrazilianPortuguese: {
		LoginSucceeded:    "Login bem-sucedido!",
		RegisterSucceeded: "Conta criada com sucesso!",
		InvalidInput:      "Por favor, insira um e-mail válido e uma senha de pelo menos 6 caracteres.",
		UnknownError:      "Erro desconhecido.",
		LoginTitle:        "Login",
		RegisterTitle:     "Criar Conta",
		ToRegister:        "Não tem uma conta? Criar conta",
		ToLogin:           "Já tem uma conta? Fazer login",
		EmailLabel:        "E-mail",
		PasswordLabel:     "Senha",
		LoadingInit:       "Inicializando…",
		LoadingConfig:     "Verificando configuração…",
		LoadingContacting: "Contatando o provedor de identidade…",
		LoadingConnected:  "Conectado  ✓",
		ProviderDown:      "Provedor de identidade inacessível — %s",
	},
	language.AmericanEnglish: {
		LoginSucceeded:    LoginSucceeded,
		RegisterSucceeded: RegisterSucceeded,
		InvalidInput:      InvalidInput,
		UnknownError:      UnknownError,
		LoginTitle:        LoginTitle,
		RegisterTitle:     RegisterTitle,
		ToRegister:        ToRegister,
		ToLogin:           ToLogin,
		EmailLabel:        EmailLabel,
		PasswordLabel:     PasswordLabel,
		LoadingInit:       LoadingInit,
		LoadingConfig:     LoadingConfig,
		LoadingContacting: LoadingContacting,
		LoadingConnected:  LoadingConnected,
		ProviderDown:      ProviderDown,
	},
}

var builtin = mustBuild()

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(DefaultTag))
	for tag, msgs := range translations {
		for key, text := range msgs {
			if err := b.SetString(tag, key, text); err != nil {
				panic("messages: register " + tag.String() + ": " + err.Error())
			}
		}
	}
	return b
}

// ParseTag resolves a locale string such as "pt-BR" or "en" to one of the
// supported tags. The bool is false when the input could not be parsed.
func ParseTag(locale string) (language.Tag, bool) {
	if locale == "" {
		return DefaultTag, false
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return DefaultTag, false
	}
	_, idx, conf := matcher.Match(requested)
	if conf == language.No {
		return DefaultTag, true
	}
	return supported[idx], true
}

// Printer renders messages in one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a Printer for locale, falling back to DefaultTag.
func NewPrinter(locale string) *Printer {
	tag, _ := ParseTag(locale)
	return &Printer{
		tag: tag,
		p:   message.NewPrinter(tag, message.Catalog(builtin)),
	}
}

func (p *Printer) Tag() language.Tag { return p.tag }

// Text returns the translation of key.
func (p *Printer) Text(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
