package models

// Mode selects which provider operation a submission performs.
type Mode int

const (
	LoginMode Mode = iota
	RegisterMode
)

// Other returns the mode a toggle switches to.
func (m Mode) Other() Mode {
	if m == LoginMode {
		return RegisterMode
	}
	return LoginMode
}

func (m Mode) String() string {
	switch m {
	case LoginMode:
		return "login"
	case RegisterMode:
		return "register"
	default:
		return "unknown"
	}
}
