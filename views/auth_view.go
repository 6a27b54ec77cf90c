package views

import (
	"time"

	"authscreen/messages"
	"authscreen/models"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/time/rate"
)

// Screen palette: white background, pink accents, red for
// failures and green for successes.
var (
	colorBackground = tcell.NewHexColor(0xFFFFFF)
	colorPrimary    = tcell.NewHexColor(0xD81B60)
	colorFailure    = tcell.NewHexColor(0xD32F2F)
	colorSuccess    = tcell.NewHexColor(0x388E3C)
)

const fieldWidth = 40

// AuthView is the sign-in / sign-up screen. The input fields own the typed
// text and forward every change to the callbacks; Render repaints title,
// buttons and status from a models.State snapshot and never writes the
// fields, so a late snapshot cannot rewind what was typed.
type AuthView struct {
	app       *tview.Application
	text      *messages.Printer
	container *tview.Flex
	title     *tview.TextView
	status    *tview.TextView
	form      *tview.Form
	email     *tview.InputField
	password  *tview.InputField
	submit    *tview.Button
	toggle    *tview.Button
	limiter   *rate.Limiter

	onEmail    func(string)
	onPassword func(string)
	onSubmit   func()
	onToggle   func()
}

// AuthCallbacks are invoked on the tview event loop.
type AuthCallbacks struct {
	OnEmail    func(string)
	OnPassword func(string)
	OnSubmit   func()
	OnToggle   func()
}

// NewAuthView builds the screen. Submit presses closer together than
// submitInterval are ignored; zero disables the debounce.
func NewAuthView(app *tview.Application, text *messages.Printer, submitInterval time.Duration, cb AuthCallbacks) *AuthView {
	limit := rate.Inf
	if submitInterval > 0 {
		limit = rate.Every(submitInterval)
	}
	a := &AuthView{
		app:        app,
		text:       text,
		limiter:    rate.NewLimiter(limit, 1),
		onEmail:    cb.OnEmail,
		onPassword: cb.OnPassword,
		onSubmit:   cb.OnSubmit,
		onToggle:   cb.OnToggle,
	}
	a.buildUI()
	a.Render(models.State{Mode: models.LoginMode})
	return a
}

func (a *AuthView) Primitive() tview.Primitive      { return a.container }
func (a *AuthView) FocusPrimitive() tview.Primitive { return a.form }

func (a *AuthView) buildUI() {
	a.title = tview.NewTextView()
	a.title.SetTextAlign(tview.AlignCenter)
	a.title.SetTextColor(colorPrimary)
	a.title.SetBackgroundColor(colorBackground)

	a.status = tview.NewTextView()
	a.status.SetTextAlign(tview.AlignCenter)
	a.status.SetWordWrap(true)
	a.status.SetBackgroundColor(colorBackground)

	a.form = tview.NewForm()
	a.form.SetBackgroundColor(colorBackground)
	a.form.SetLabelColor(colorPrimary)
	a.form.SetFieldBackgroundColor(tcell.ColorWhiteSmoke)
	a.form.SetFieldTextColor(tcell.ColorBlack)
	a.form.SetButtonBackgroundColor(colorPrimary)
	a.form.SetButtonTextColor(tcell.ColorWhite)
	a.form.SetButtonsAlign(tview.AlignCenter)

	a.form.AddInputField(a.text.Text(messages.EmailLabel), "", fieldWidth, nil, func(s string) {
		if a.onEmail != nil {
			a.onEmail(s)
		}
	})
	a.form.AddPasswordField(a.text.Text(messages.PasswordLabel), "", fieldWidth, '*', func(s string) {
		if a.onPassword != nil {
			a.onPassword(s)
		}
	})
	a.form.AddButton(a.text.Text(messages.LoginTitle), a.handleSubmit)
	a.form.AddButton(a.text.Text(messages.ToRegister), a.handleToggle)

	a.email = a.form.GetFormItem(0).(*tview.InputField)
	a.password = a.form.GetFormItem(1).(*tview.InputField)
	a.password.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			a.handleSubmit()
		}
	})
	a.submit = a.form.GetButton(0)
	a.toggle = a.form.GetButton(1)
	a.toggle.SetLabelColor(colorPrimary)
	a.toggle.SetBackgroundColor(colorBackground)

	spacer := func() *tview.Box { return tview.NewBox().SetBackgroundColor(colorBackground) }

	column := tview.NewFlex()
	column.SetDirection(tview.FlexRow)
	column.SetBackgroundColor(colorBackground)
	column.AddItem(spacer(), 0, 1, false)
	column.AddItem(a.title, 1, 0, false)
	column.AddItem(spacer(), 1, 0, false)
	column.AddItem(a.status, 2, 0, false)
	column.AddItem(spacer(), 1, 0, false)
	column.AddItem(a.form, 9, 0, true)
	column.AddItem(spacer(), 0, 1, false)

	a.container = tview.NewFlex()
	a.container.SetBackgroundColor(colorBackground)
	a.container.AddItem(spacer(), 0, 1, false)
	a.container.AddItem(column, fieldWidth+20, 0, true)
	a.container.AddItem(spacer(), 0, 1, false)
}

func (a *AuthView) handleSubmit() {
	if !a.limiter.Allow() {
		return
	}
	if a.onSubmit != nil {
		a.onSubmit()
	}
}

// handleToggle clears the fields after the controller has cleared its
// draft, so the changed callbacks fired by SetText are no-ops.
func (a *AuthView) handleToggle() {
	if a.onToggle != nil {
		a.onToggle()
	}
	a.email.SetText("")
	a.password.SetText("")
	a.app.SetFocus(a.email)
}

// Render repaints the screen from st. Must run on the tview event loop.
func (a *AuthView) Render(st models.State) {
	title := a.text.Text(messages.LoginTitle)
	toggle := a.text.Text(messages.ToRegister)
	if st.Mode == models.RegisterMode {
		title = a.text.Text(messages.RegisterTitle)
		toggle = a.text.Text(messages.ToLogin)
	}
	a.title.SetText(title)
	if st.Submitting {
		a.submit.SetLabel(title + " …")
	} else {
		a.submit.SetLabel(title)
	}
	a.toggle.SetLabel(toggle)

	a.status.SetTextColor(statusColor(st.Status.Kind))
	a.status.SetText(st.Status.Text)
}

func statusColor(kind models.StatusKind) tcell.Color {
	if kind == models.StatusFailure {
		return colorFailure
	}
	return colorSuccess
}
