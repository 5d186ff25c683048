package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	session "github.com/roomify/go-session"
	"github.com/roomify/go-session/api"
	"github.com/roomify/go-session/store"
)

// app bundles the session core every command shares: the durable store,
// the hydrated controller, the REST client and the route guard.
type app struct {
	controller *session.Controller
	store      *store.Bun
	api        *api.Client
	guard      session.Guard
}

func newApp(ctx context.Context) (*app, error) {
	path := statePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to prepare state directory: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session cache: %w", err)
	}

	controller := session.NewController(st, session.NewHTTPAuthClient(apiURL()))
	controller.Initialize(ctx)

	return &app{
		controller: controller,
		store:      st,
		api:        api.NewClient(apiURL(), controller),
		guard:      session.NewGuard(),
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}

// guarded wraps a command's work in a route guard evaluation, translating
// redirect decisions into operator-facing errors.
func guarded(route session.Route, run func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		decision := a.guard.Evaluate(a.controller.Snapshot(), route)
		switch decision.Action {
		case session.ActionShowLoading:
			return fmt.Errorf("session is still loading; try again")
		case session.ActionRedirectToLogin:
			return fmt.Errorf("not logged in; run \"roomify-admin login\" first")
		case session.ActionRedirectToUnauthorized:
			return fmt.Errorf("your role does not allow access to %s", decision.From)
		}

		return run(ctx, a, args)
	}
}

// open runs an unguarded command with a wired app.
func open(run func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		return run(ctx, a, args)
	}
}
