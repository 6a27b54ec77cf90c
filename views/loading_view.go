package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

type LoadingView struct {
	app          *tview.Application
	container    *tview.Flex
	progressText *tview.TextView
	statusText   *tview.TextView
	errorText    *tview.TextView // shown only on fatal error
}

func NewLoadingView(app *tview.Application, title string) *LoadingView {
	l := &LoadingView{app: app}
	l.buildUI(title)
	return l
}

func (l *LoadingView) buildUI(title string) {
	logoText := tview.NewTextView()
	logoText.SetDynamicColors(true)
	logoText.SetTextAlign(tview.AlignCenter)
	logoText.SetBackgroundColor(colorBackground)
	logoText.SetText(
		"[#D81B60]╔═══════════════════════════════════════╗\n" +
			fmt.Sprintf("║%s║\n", centerText(title, 39)) +
			"╚═══════════════════════════════════════╝[-]",
	)

	l.progressText = tview.NewTextView()
	l.progressText.SetDynamicColors(true)
	l.progressText.SetTextAlign(tview.AlignCenter)
	l.progressText.SetBackgroundColor(colorBackground)
	l.progressText.SetText(progressBar(0))

	l.statusText = tview.NewTextView()
	l.statusText.SetDynamicColors(true)
	l.statusText.SetTextAlign(tview.AlignCenter)
	l.statusText.SetBackgroundColor(colorBackground)

	// errorText is empty until ShowFatalError is called.
	l.errorText = tview.NewTextView()
	l.errorText.SetDynamicColors(true)
	l.errorText.SetTextAlign(tview.AlignCenter)
	l.errorText.SetBackgroundColor(colorBackground)

	l.container = tview.NewFlex()
	l.container.SetDirection(tview.FlexRow)
	l.container.SetBackgroundColor(colorBackground)
	l.container.AddItem(logoText, 0, 1, false)
	l.container.AddItem(tview.NewBox().SetBackgroundColor(colorBackground), 1, 0, false)
	l.container.AddItem(l.progressText, 1, 0, false)
	l.container.AddItem(l.statusText, 1, 0, false)
	l.container.AddItem(tview.NewBox().SetBackgroundColor(colorBackground), 1, 0, false)
	l.container.AddItem(l.errorText, 3, 0, false) // gap + error + countdown
}

func (l *LoadingView) Primitive() tview.Primitive {
	return l.container
}

// UpdateProgress redraws the progress bar. Safe to call from any goroutine.
func (l *LoadingView) UpdateProgress(progress int) {
	l.app.QueueUpdateDraw(func() {
		l.progressText.SetText(progressBar(progress))
	})
}

// SetStatus updates the status line under the progress bar.
// Safe to call from any goroutine.
func (l *LoadingView) SetStatus(text string) {
	l.app.QueueUpdateDraw(func() {
		l.statusText.SetText(fmt.Sprintf("[#D81B60]%s[-]", tview.Escape(text)))
	})
}

// ShowFatalError replaces the status line with a red error banner.
// Must be called on the event loop.
func (l *LoadingView) ShowFatalError(message string) {
	l.progressText.SetText("[#D32F2F]████████████████████[-]  ERROR")
	l.statusText.SetText("")
	l.errorText.SetText(fmt.Sprintf("[#D32F2F]✗  %s[-]", tview.Escape(message)))
}

// SetCountdown rewrites the countdown line below the error banner.
// Must be called on the event loop.
func (l *LoadingView) SetCountdown(seconds int) {
	first, _, _ := strings.Cut(l.errorText.GetText(false), "\n")
	dots := strings.Repeat("●", seconds) + strings.Repeat("○", max(0, 4-seconds))
	l.errorText.SetText(fmt.Sprintf(
		"%s\n[gray]Exiting in %d second%s…  %s[-]",
		first, seconds, pluralS(seconds), dots,
	))
}

func progressBar(progress int) string {
	progress = min(max(progress, 0), 100)
	filled := progress / 5
	return fmt.Sprintf("[#388E3C]%s%s[-]  %d%%",
		strings.Repeat("█", filled), strings.Repeat("░", 20-filled), progress)
}

func centerText(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
