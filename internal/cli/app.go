// Package cli drives the interactive console: the login screen, the main
// menu and the product, transaction and history workflows. All state lives in
// the App; the session for the current login is threaded through every call.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

// App wires the console menus to the core services.
type App struct {
	auth      ports.AuthService
	catalog   ports.CatalogService
	purchases ports.PurchaseService
	history   ports.HistoryService
	pageSize  int
	p         *prompter
	logger    zerolog.Logger
}

type Config struct {
	Auth      ports.AuthService
	Catalog   ports.CatalogService
	Purchases ports.PurchaseService
	History   ports.HistoryService
	PageSize  int
	In        io.Reader
	Out       io.Writer
	Logger    zerolog.Logger
}

func New(cfg Config) *App {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	return &App{
		auth:      cfg.Auth,
		catalog:   cfg.Catalog,
		purchases: cfg.Purchases,
		history:   cfg.History,
		pageSize:  pageSize,
		p:         newPrompter(cfg.In, cfg.Out),
		logger:    cfg.Logger,
	}
}

// Run loops login screen then main menu until the operator exits.
func (a *App) Run(ctx context.Context) error {
	for {
		sess := a.loginScreen(ctx)
		if sess == nil {
			a.p.println("Exiting the application. Goodbye!")
			return nil
		}
		if !a.mainMenu(ctx, sess) {
			a.p.println("Exiting the application. Goodbye!")
			return nil
		}
		// logout: back to the login screen
	}
}

// loginScreen returns an authenticated session, or nil when the operator
// chooses to exit.
func (a *App) loginScreen(ctx context.Context) *domain.Session {
	for {
		a.p.println("\n--- Login ---")
		a.p.println("1. Login")
		a.p.println("2. Register")
		a.p.println("3. Exit")

		choice := a.p.choice("Enter your choice: ")
		if a.p.closed() {
			return nil
		}
		switch choice {
		case 1:
			if sess := a.login(ctx); sess != nil {
				return sess
			}
		case 2:
			a.register(ctx)
		case 3:
			return nil
		default:
			a.p.println("Invalid choice!")
		}
	}
}

func (a *App) login(ctx context.Context) *domain.Session {
	email := a.p.line("Enter email: ")
	password := a.p.line("Enter password: ")

	sess, err := a.auth.Authenticate(ctx, email, password)
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return nil
	}
	a.p.printf("Login successful! Welcome, %s.\n", sess.User().FullName())
	return sess
}

func (a *App) register(ctx context.Context) {
	a.p.println("\n--- Register New User ---")
	input := ports.RegisterInput{
		FirstName: a.p.line("Enter first name: "),
		LastName:  a.p.line("Enter last name: "),
		Email:     a.p.line("Enter email: "),
		Phone:     a.p.line("Enter phone (XXX-XXX-XXXX): "),
		Password:  a.p.line("Enter password: "),
	}

	if _, err := a.auth.Register(ctx, input); err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.println("Registration successful! You can now login.")
}

// mainMenu returns false when the operator exits the application, true on
// logout.
func (a *App) mainMenu(ctx context.Context, sess *domain.Session) bool {
	for {
		a.p.println("\nWelcome to Product Management System")
		a.p.println("1. Manage Products")
		a.p.println("2. Complete Transactions")
		a.p.println("3. View Customer History")
		a.p.println("4. Logout")
		a.p.println("5. Exit")

		choice := a.p.choice("Enter your choice: ")
		if a.p.closed() {
			return false
		}
		switch choice {
		case 1:
			a.productMenu(ctx, sess)
		case 2:
			a.transactionMenu(ctx, sess)
		case 3:
			a.historyMenu(ctx, sess)
		case 4:
			a.p.printf("Logged out %s after %s.\n",
				sess.User().FullName(), time.Since(sess.StartedAt()).Round(time.Second))
			return true
		case 5:
			return false
		default:
			a.p.println("Invalid choice. Please try again.")
		}
	}
}
