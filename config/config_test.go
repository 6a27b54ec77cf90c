package config

import (
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("FIREBASE_API_KEY", "k")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider != ProviderFirebase {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.IdentityURL != "https://identitytoolkit.googleapis.com" {
		t.Fatalf("identity url = %q", cfg.IdentityURL)
	}
	if cfg.RequestTimeout != 15*time.Second || cfg.SubmitInterval != 500*time.Millisecond {
		t.Fatalf("durations = %v, %v", cfg.RequestTimeout, cfg.SubmitInterval)
	}
	if cfg.Locale != "pt-BR" || cfg.LogFile != "error.txt" {
		t.Fatalf("locale/log = %q, %q", cfg.Locale, cfg.LogFile)
	}
}

func TestLoadFromEnvMemoryNeedsNoKey(t *testing.T) {
	t.Setenv("AUTHSCREEN_PROVIDER", "memory")
	t.Setenv("FIREBASE_API_KEY", "")

	if _, err := LoadFromEnv(); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLoadFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing key", map[string]string{"FIREBASE_API_KEY": ""}, "FIREBASE_API_KEY is required"},
		{"bad provider", map[string]string{"AUTHSCREEN_PROVIDER": "ldap"}, `unknown provider "ldap"`},
		{"bad duration", map[string]string{"AUTHSCREEN_REQUEST_TIMEOUT": "soon"}, "parse env:"},
		{"zero timeout", map[string]string{"FIREBASE_API_KEY": "k", "AUTHSCREEN_REQUEST_TIMEOUT": "0s"}, "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

// TestExitf uses the subprocess pattern because os.Exit cannot be
// intercepted in-process.
func TestExitf(t *testing.T) {
	if os.Getenv("TEST_EXITF_SUBPROCESS") == "1" {
		Exitf("fatal: %s", "no key")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitf$")
	cmd.Env = append(os.Environ(), "TEST_EXITF_SUBPROCESS=1")
	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "fatal: no key") {
		t.Fatalf("output = %q", out)
	}
}
