package views

import (
	"strings"
	"testing"

	"github.com/rivo/tview"
)

func TestProgressBarClamps(t *testing.T) {
	if got := progressBar(150); !strings.HasSuffix(got, "100%") || strings.Contains(got, "░") {
		t.Fatalf("progressBar(150) = %q", got)
	}
	if got := progressBar(-3); !strings.HasSuffix(got, " 0%") || strings.Contains(got, "█") {
		t.Fatalf("progressBar(-3) = %q", got)
	}
	if got := progressBar(50); strings.Count(got, "█") != 10 {
		t.Fatalf("progressBar(50) = %q", got)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab  " {
		t.Fatalf("centerText = %q", got)
	}
	if got := centerText("abcdef", 3); got != "abc" {
		t.Fatalf("centerText truncation = %q", got)
	}
}

func TestCountdownKeepsErrorLine(t *testing.T) {
	l := NewLoadingView(tview.NewApplication(), "authscreen")
	l.ShowFatalError("provider down")
	l.SetCountdown(3)
	l.SetCountdown(1)

	lines := strings.Split(l.errorText.GetText(true), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[0], "provider down") {
		t.Fatalf("error line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Exiting in 1 second…") || !strings.HasSuffix(lines[1], "●○○○") {
		t.Fatalf("countdown line = %q", lines[1])
	}
}
