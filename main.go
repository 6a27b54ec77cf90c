package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"authscreen/config"
	"authscreen/controllers"
	"authscreen/identity"
	"authscreen/messages"
	"authscreen/models"
	"authscreen/telemetry"
	"authscreen/views"

	"github.com/rivo/tview"
)

func recoverFromPanic() {
	if r := recover(); r != nil {
		log.Printf("PANIC RECOVERED: %v", r)
	}
}

func newProvider(cfg *config.Config) identity.Provider {
	if cfg.Provider == config.ProviderMemory {
		return identity.NewMemoryProvider()
	}
	return identity.NewFirebaseClient(cfg.FirebaseAPIKey, cfg.RequestTimeout,
		identity.WithBaseURL(cfg.IdentityURL))
}

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		config.Exitf("authscreen: %v", err)
	}

	// The terminal belongs to tview, so logs go to a file only.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		config.Exitf("authscreen: open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("FATAL PANIC in main: %v", r)
			logFile.Close()
			os.Exit(1)
		}
	}()

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	text := messages.NewPrinter(cfg.Locale)
	app := tview.NewApplication()
	pages := tview.NewPages()

	ctrl := controllers.NewAppController(app, newProvider(cfg), text)
	defer ctrl.Close()

	loadingView := views.NewLoadingView(app, "authscreen")
	authView := views.NewAuthView(app, text, cfg.SubmitInterval, ctrl.AuthCallbacks())
	ctrl.BindAuthView(authView)

	ctrl.RegisterView(models.ScreenLoading, loadingView)
	ctrl.RegisterView(models.ScreenAuth, authView)

	pages.AddPage("loading", loadingView.Primitive(), true, true)
	pages.AddPage("auth", authView.Primitive(), true, false)

	// ── LOADING ───────────────────────────────────────────────────────────────
	ctrl.SM.OnEnter(models.ScreenLoading, func() {
		defer recoverFromPanic()
		pages.SwitchToPage("loading")

		go func() {
			defer recoverFromPanic()

			steps := []struct {
				progress int
				label    string
			}{
				{20, text.Text(messages.LoadingInit)},
				{50, text.Text(messages.LoadingConfig)},
				{80, text.Text(messages.LoadingContacting)},
			}
			for _, s := range steps {
				time.Sleep(120 * time.Millisecond)
				loadingView.UpdateProgress(s.progress)
				loadingView.SetStatus(s.label)
			}

			if err := ctrl.CheckProvider(context.Background(), 3*time.Second); err != nil {
				log.Printf("identity provider check failed: %v", err)
				app.QueueUpdateDraw(func() {
					defer recoverFromPanic()
					loadingView.ShowFatalError(text.Text(messages.ProviderDown, cfg.IdentityURL))
					loadingView.SetCountdown(4)
				})
				for i := 3; i >= 0; i-- {
					time.Sleep(time.Second)
					remaining := i
					app.QueueUpdateDraw(func() {
						defer recoverFromPanic()
						loadingView.SetCountdown(remaining)
					})
				}
				time.Sleep(200 * time.Millisecond)
				app.Stop()
				return
			}

			loadingView.UpdateProgress(100)
			loadingView.SetStatus(text.Text(messages.LoadingConnected))
			time.Sleep(300 * time.Millisecond)

			app.QueueUpdateDraw(func() {
				defer recoverFromPanic()
				ctrl.SM.Transition(models.ScreenAuth)
			})
		}()
	})

	// ── AUTH ──────────────────────────────────────────────────────────────────
	ctrl.SM.OnEnter(models.ScreenAuth, func() {
		defer recoverFromPanic()
		pages.SwitchToPage("auth")
		authView.Render(ctrl.Flow.Snapshot())
		app.SetFocus(authView.FocusPrimitive())
	})

	// Start the state machine once the event loop is running.
	go func() {
		defer recoverFromPanic()
		time.Sleep(100 * time.Millisecond)
		app.QueueUpdateDraw(func() {
			defer recoverFromPanic()
			ctrl.SM.Transition(models.ScreenLoading)
		})
	}()

	if err := app.SetRoot(pages, true).Run(); err != nil {
		log.Printf("Application error: %v", err)
		fmt.Fprintf(os.Stderr, "authscreen: %v\n", err)
	}
}
