package models

type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusFailure
)

// Status is the single user-facing outcome of the latest submission.
// It is replaced as a whole, never appended to.
type Status struct {
	Text string
	Kind StatusKind
}

// IsZero reports whether no outcome is being shown.
func (s Status) IsZero() bool {
	return s.Kind == StatusNone && s.Text == ""
}
