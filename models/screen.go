package models

type Screen int

// ScreenNone is the state before the first screen is shown.
const ScreenNone Screen = -1

const (
	ScreenLoading Screen = iota
	ScreenAuth
)
