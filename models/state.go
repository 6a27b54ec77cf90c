package models

// Draft is the email/password pair being edited on the screen.
type Draft struct {
	Email    string
	Password string
}

// State is a point-in-time copy of everything the auth screen renders.
type State struct {
	Draft      Draft
	Mode       Mode
	Status     Status
	Submitting bool
}
