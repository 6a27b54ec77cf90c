package views

import (
	"testing"
	"time"

	"authscreen/messages"
	"authscreen/models"

	"github.com/rivo/tview"
)

func newTestAuthView(cb AuthCallbacks, interval time.Duration) *AuthView {
	return NewAuthView(tview.NewApplication(), messages.NewPrinter("pt-BR"), interval, cb)
}

func TestAuthViewRenderFollowsMode(t *testing.T) {
	v := newTestAuthView(AuthCallbacks{}, 0)

	v.Render(models.State{Mode: models.RegisterMode})
	if got := v.title.GetText(false); got != "Criar Conta" {
		t.Fatalf("title = %q", got)
	}
	if got := v.toggle.GetLabel(); got != "Já tem uma conta? Fazer login" {
		t.Fatalf("toggle = %q", got)
	}

	v.Render(models.State{Mode: models.LoginMode})
	if got := v.submit.GetLabel(); got != "Login" {
		t.Fatalf("submit = %q", got)
	}
	if got := v.toggle.GetLabel(); got != "Não tem uma conta? Criar conta" {
		t.Fatalf("toggle = %q", got)
	}
}

func TestAuthViewRenderLeavesTypedTextAlone(t *testing.T) {
	var emails []string
	v := newTestAuthView(AuthCallbacks{OnEmail: func(s string) { emails = append(emails, s) }}, 0)

	v.email.SetText("abcd")
	emails = nil
	// A snapshot taken before the last keystrokes.
	v.Render(models.State{Draft: models.Draft{Email: "ab"}})

	if got := v.email.GetText(); got != "abcd" {
		t.Fatalf("email field = %q, want %q", got, "abcd")
	}
	if len(emails) != 0 {
		t.Fatalf("render fired changed callbacks: %v", emails)
	}
}

func TestAuthViewToggleClearsFields(t *testing.T) {
	var toggles int
	var emails, passwords []string
	v := newTestAuthView(AuthCallbacks{
		OnToggle:   func() { toggles++ },
		OnEmail:    func(s string) { emails = append(emails, s) },
		OnPassword: func(s string) { passwords = append(passwords, s) },
	}, 0)
	v.email.SetText("a@b.com")
	v.password.SetText("123456")

	v.handleToggle()

	if toggles != 1 {
		t.Fatalf("toggles = %d, want 1", toggles)
	}
	if v.email.GetText() != "" || v.password.GetText() != "" {
		t.Fatalf("fields = %q, %q, want empty", v.email.GetText(), v.password.GetText())
	}
	if emails[len(emails)-1] != "" || passwords[len(passwords)-1] != "" {
		t.Fatalf("last forwarded values = %q, %q, want empty", emails[len(emails)-1], passwords[len(passwords)-1])
	}
}

func TestAuthViewStatusColor(t *testing.T) {
	if statusColor(models.StatusFailure) != colorFailure {
		t.Fatal("failure should render red")
	}
	if statusColor(models.StatusSuccess) != colorSuccess {
		t.Fatal("success should render green")
	}
}

func TestAuthViewDebouncesSubmit(t *testing.T) {
	submits := 0
	v := newTestAuthView(AuthCallbacks{OnSubmit: func() { submits++ }}, time.Hour)

	v.handleSubmit()
	v.handleSubmit()
	v.handleSubmit()

	if submits != 1 {
		t.Fatalf("submits = %d, want 1", submits)
	}
}
