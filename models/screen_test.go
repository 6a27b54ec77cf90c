package models

import "testing"

func TestScreenValues(t *testing.T) {
	if ScreenLoading != 0 || ScreenAuth != 1 {
		t.Fatalf("ScreenLoading = %d, ScreenAuth = %d, want 0 and 1", ScreenLoading, ScreenAuth)
	}
	if ScreenNone == ScreenLoading || ScreenNone == ScreenAuth {
		t.Fatalf("ScreenNone = %d collides with a real screen", ScreenNone)
	}
}
