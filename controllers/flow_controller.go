package controllers

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"

	"authscreen/identity"
	"authscreen/messages"
	"authscreen/models"
)

var (
	// ErrSubmissionInFlight is returned by Submit while an earlier
	// submission is still waiting for the provider.
	ErrSubmissionInFlight = errors.New("controllers: submission already in flight")
	// ErrFlowClosed is returned by Submit after Close.
	ErrFlowClosed = errors.New("controllers: flow closed")
)

// FlowController owns the credential draft, the login/register mode and the
// status message of the auth screen, and sends valid drafts to the identity
// provider.
//
// Concurrency:
//   - Setters, Toggle and Submit may be called from the UI goroutine while a
//     provider call completes on another goroutine; state is mutex-guarded.
//   - Observers run outside the lock, on whichever goroutine made the change.
//     UI observers must schedule redraws themselves (QueueUpdateDraw).
type FlowController struct {
	provider identity.Provider
	text     *messages.Printer

	mu         sync.Mutex
	draft      models.Draft
	mode       *StateMachine[models.Mode]
	status     models.Status
	submitting bool
	closed     bool
	observers  []func(models.State)
}

func NewFlowController(provider identity.Provider, text *messages.Printer) *FlowController {
	f := &FlowController{
		provider: provider,
		text:     text,
		mode:     NewStateMachine(models.LoginMode),
	}
	// Entering either mode discards the draft and the last outcome.
	reset := func() {
		f.draft = models.Draft{}
		f.status = models.Status{}
	}
	f.mode.OnEnter(models.LoginMode, reset)
	f.mode.OnEnter(models.RegisterMode, reset)
	return f
}

// Subscribe registers fn to receive a snapshot after every state change.
func (f *FlowController) Subscribe(fn func(models.State)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, fn)
}

func (f *FlowController) Snapshot() models.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *FlowController) SetEmail(email string) {
	f.update(func() bool {
		if f.draft.Email == email {
			return false
		}
		f.draft.Email = email
		return true
	})
}

func (f *FlowController) SetPassword(password string) {
	f.update(func() bool {
		if f.draft.Password == password {
			return false
		}
		f.draft.Password = password
		return true
	})
}

// Toggle switches between login and register and clears email, password and
// status, discarding whatever was typed.
func (f *FlowController) Toggle() {
	f.update(func() bool {
		f.mode.Transition(f.mode.Current().Other())
		return true
	})
}

// Submit validates the draft and, when valid, performs the provider call for
// the current mode. Exactly one status is set per accepted submission and
// no call is retried. The returned error is only ErrSubmissionInFlight or
// ErrFlowClosed; outcomes, failures included, are reported as a Status.
func (f *FlowController) Submit(ctx context.Context) (models.Status, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return models.Status{}, ErrFlowClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return models.Status{}, ErrSubmissionInFlight
	}
	draft, mode := f.draft, f.mode.Current()

	if !Validate(draft.Email, draft.Password) {
		st := models.Status{Text: f.text.Text(messages.InvalidInput), Kind: models.StatusFailure}
		f.status = st
		snap, obs := f.snapshotLocked(), f.observersLocked()
		f.mu.Unlock()
		notify(obs, snap)
		return st, nil
	}

	f.submitting = true
	snap, obs := f.snapshotLocked(), f.observersLocked()
	f.mu.Unlock()
	notify(obs, snap)

	var err error
	if mode == models.RegisterMode {
		err = f.provider.CreateAccount(ctx, draft.Email, draft.Password)
	} else {
		err = f.provider.Authenticate(ctx, draft.Email, draft.Password)
	}
	st := f.outcome(mode, err)

	f.mu.Lock()
	f.submitting = false
	if f.closed {
		f.mu.Unlock()
		log.Printf("flow: dropping %s result after close", mode)
		return st, nil
	}
	f.status = st
	snap, obs = f.snapshotLocked(), f.observersLocked()
	f.mu.Unlock()
	notify(obs, snap)
	return st, nil
}

// SubmitAsync runs Submit on a new goroutine and calls done once with its
// result.
func (f *FlowController) SubmitAsync(ctx context.Context, done func(models.Status, error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in flow submission: %v", r)
			}
		}()
		st, err := f.Submit(ctx)
		if done != nil {
			done(st, err)
		}
	}()
}

// Close detaches the controller from its screen. Results arriving later are
// dropped and observers are no longer called.
func (f *FlowController) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.observers = nil
}

func (f *FlowController) outcome(mode models.Mode, err error) models.Status {
	if err == nil {
		key := messages.LoginSucceeded
		if mode == models.RegisterMode {
			key = messages.RegisterSucceeded
		}
		return models.Status{Text: f.text.Text(key), Kind: models.StatusSuccess}
	}

	msg := identity.Describe(err)
	if msg == "" {
		msg = f.text.Text(messages.UnknownError)
	}
	return models.Status{Text: msg, Kind: models.StatusFailure}
}

// update applies fn under the lock and notifies observers when fn reports a
// change.
func (f *FlowController) update(fn func() bool) {
	f.mu.Lock()
	if f.closed || !fn() {
		f.mu.Unlock()
		return
	}
	snap, obs := f.snapshotLocked(), f.observersLocked()
	f.mu.Unlock()
	notify(obs, snap)
}

func (f *FlowController) snapshotLocked() models.State {
	return models.State{
		Draft:      f.draft,
		Mode:       f.mode.Current(),
		Status:     f.status,
		Submitting: f.submitting,
	}
}

func (f *FlowController) observersLocked() []func(models.State) {
	return slices.Clone(f.observers)
}

func notify(observers []func(models.State), snap models.State) {
	for _, fn := range observers {
		fn(snap)
	}
}
