package controllers

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"authscreen/identity"
	"authscreen/messages"
	"authscreen/models"
	"authscreen/views"

	"github.com/rivo/tview"
)

// View is anything that can be placed in the page stack.
type View interface {
	Primitive() tview.Primitive
}

// AppController wires the screen state machine, the views and the
// credential flow to one tview application.
type AppController struct {
	App   *tview.Application
	SM    *StateMachine[models.Screen]
	Flow  *FlowController
	Views map[models.Screen]View

	provider identity.Provider
}

func NewAppController(app *tview.Application, provider identity.Provider, text *messages.Printer) *AppController {
	return &AppController{
		App:      app,
		SM:       NewStateMachine(models.ScreenNone),
		Flow:     NewFlowController(provider, text),
		Views:    make(map[models.Screen]View),
		provider: provider,
	}
}

func (c *AppController) RegisterView(screen models.Screen, v View) {
	c.Views[screen] = v
}

// AuthCallbacks returns the handlers an AuthView forwards input to.
func (c *AppController) AuthCallbacks() views.AuthCallbacks {
	return views.AuthCallbacks{
		OnEmail:    c.Flow.SetEmail,
		OnPassword: c.Flow.SetPassword,
		OnSubmit:   c.OnSubmit,
		OnToggle:   c.Flow.Toggle,
	}
}

// BindAuthView repaints v after flow changes. Notifications may come from
// the event loop itself, so the redraw is queued from a separate goroutine;
// QueueUpdateDraw blocks until the loop runs it. Bursts collapse into one
// repaint of the latest snapshot.
func (c *AppController) BindAuthView(v *views.AuthView) {
	var pending atomic.Bool
	c.Flow.Subscribe(func(models.State) {
		if !pending.CompareAndSwap(false, true) {
			return
		}
		go c.App.QueueUpdateDraw(func() {
			pending.Store(false)
			v.Render(c.Flow.Snapshot())
		})
	})
}

// OnSubmit starts a submission without blocking the event loop.
func (c *AppController) OnSubmit() {
	c.Flow.SubmitAsync(context.Background(), func(_ models.Status, err error) {
		if errors.Is(err, ErrSubmissionInFlight) {
			log.Printf("flow: submit ignored, previous submission still running")
		}
	})
}

// CheckProvider probes the provider when it supports it.
func (c *AppController) CheckProvider(ctx context.Context, timeout time.Duration) error {
	p, ok := c.provider.(identity.Pinger)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Ping(ctx)
}

// Close detaches the flow; results of calls still running are dropped.
func (c *AppController) Close() {
	c.Flow.Close()
}
