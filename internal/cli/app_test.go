package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

type stubAuthService struct {
	user *domain.Person
}

func (s *stubAuthService) Register(_ context.Context, _ ports.RegisterInput) (*domain.Person, error) {
	return s.user, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, _, _ string) (*domain.Session, error) {
	return domain.NewSession(s.user), nil
}

// runWithTimeout guards against a menu loop that never returns on exhausted
// input.
func runWithTimeout(t *testing.T, app *App) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return on exhausted input")
		return nil
	}
}

func TestRunExitsWhenInputIsClosed(t *testing.T) {
	var out bytes.Buffer
	app := New(Config{In: strings.NewReader(""), Out: &out, Logger: zerolog.Nop()})

	if err := runWithTimeout(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.Count(out.String(), "--- Login ---"); got != 1 {
		t.Fatalf("login menu drawn %d times, want 1: %s", got, out.String())
	}
	if !strings.Contains(out.String(), "Goodbye") {
		t.Fatalf("missing exit message: %s", out.String())
	}
}

func TestRunLogoutReturnsToLoginScreen(t *testing.T) {
	var out bytes.Buffer
	auth := &stubAuthService{user: &domain.Person{ID: 1, FirstName: "Uma", LastName: "User", Email: "uma@store.local", Role: domain.RoleUser}}
	app := New(Config{
		Auth:   auth,
		In:     strings.NewReader("1\numa@store.local\npw\n4\n3\n"),
		Out:    &out,
		Logger: zerolog.Nop(),
	})

	if err := runWithTimeout(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Logged out Uma User after ") {
		t.Fatalf("missing logout message with session duration: %s", out.String())
	}
	if got := strings.Count(out.String(), "--- Login ---"); got != 2 {
		t.Fatalf("login menu drawn %d times, want 2: %s", got, out.String())
	}
}

func TestRunExitsWhenInputEndsMidSession(t *testing.T) {
	var out bytes.Buffer
	auth := &stubAuthService{user: &domain.Person{ID: 1, FirstName: "Uma", LastName: "User", Email: "uma@store.local", Role: domain.RoleUser}}
	app := New(Config{
		Auth:   auth,
		In:     strings.NewReader("1\numa@store.local\npw\n"),
		Out:    &out,
		Logger: zerolog.Nop(),
	})

	if err := runWithTimeout(t, app); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Login successful!") {
		t.Fatalf("login did not complete: %s", out.String())
	}
	if got := strings.Count(out.String(), "Welcome to Product Management System"); got != 1 {
		t.Fatalf("main menu drawn %d times, want 1: %s", got, out.String())
	}
}
