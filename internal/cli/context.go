// Package cli provides the command-line interface for the curate application.
package cli

import (
	"context"

	"github.com/law-makers/curate/internal/app"
	"github.com/law-makers/curate/internal/config"
	"github.com/spf13/cobra"
)

// ctxKey is used for storing the application in command contexts
type ctxKey string

const (
	appKey    ctxKey = "app"
	configKey ctxKey = "config"
)

// setApp stores the Application in the command's context
func setApp(cmd *cobra.Command, a *app.Application) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appKey, a))
}

// getApp retrieves the Application from the command's context
func getApp(cmd *cobra.Command) *app.Application {
	if cmd.Context() == nil {
		return nil
	}
	a, _ := cmd.Context().Value(appKey).(*app.Application)
	return a
}

// setConfig stores the loaded configuration for commands that run without an
// Application
func setConfig(cmd *cobra.Command, cfg *config.Config) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, configKey, cfg))
}

func getConfig(cmd *cobra.Command) *config.Config {
	if cmd.Context() == nil {
		return nil
	}
	cfg, _ := cmd.Context().Value(configKey).(*config.Config)
	return cfg
}
