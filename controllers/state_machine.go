package controllers

// StateMachine tracks one current state and runs the hooks registered for
// leaving and entering states. It is not safe for concurrent use; callers
// drive it from a single goroutine or hold their own lock.
type StateMachine[S comparable] struct {
	current S
	onEnter map[S]func()
	onExit  map[S]func()
}

func NewStateMachine[S comparable](initial S) *StateMachine[S] {
	return &StateMachine[S]{
		current: initial,
		onEnter: make(map[S]func()),
		onExit:  make(map[S]func()),
	}
}

func (sm *StateMachine[S]) OnEnter(state S, fn func()) {
	sm.onEnter[state] = fn
}

func (sm *StateMachine[S]) OnExit(state S, fn func()) {
	sm.onExit[state] = fn
}

// Transition moves to the given state. Transitioning to the current state
// is a no-op and runs no hooks.
func (sm *StateMachine[S]) Transition(to S) {
	if sm.current == to {
		return
	}
	if fn, ok := sm.onExit[sm.current]; ok {
		fn()
	}
	sm.current = to
	if fn, ok := sm.onEnter[to]; ok {
		fn()
	}
}

func (sm *StateMachine[S]) Current() S {
	return sm.current
}
