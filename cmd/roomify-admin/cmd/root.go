// Package cmd provides the CLI commands for the Roomify admin console.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	apiURLFlag  string
	stateDBFlag string
)

var rootCmd = &cobra.Command{
	Use:   "roomify-admin",
	Short: "Roomify admin console",
	Long: `roomify-admin is the operator console for the Roomify hotel-management
backend: login/logout, room-type and room catalogue management, and staff
administration, gated by the roles embedded in your session token.

Configuration:
  --api-url / ROOMIFY_API_URL    backend API base (default http://localhost:8080/api)
  --state   / ROOMIFY_STATE_DB   session cache database
                                 (default $HOME/.roomify/state.db)

Run "roomify-admin login" once; the session is cached locally and restored
on every invocation until the token expires or you log out.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "backend API base URL")
	rootCmd.PersistentFlags().StringVar(&stateDBFlag, "state", "", "path to the session cache database")
}

func initConfig() {
	viper.SetEnvPrefix("ROOMIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api.url", "http://localhost:8080/api")
	viper.SetDefault("state.db", defaultStatePath())

	if apiURLFlag != "" {
		viper.Set("api.url", apiURLFlag)
	}
	if stateDBFlag != "" {
		viper.Set("state.db", stateDBFlag)
	}
}

func apiURL() string {
	return viper.GetString("api.url")
}

func statePath() string {
	return viper.GetString("state.db")
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "roomify-state.db"
	}
	return filepath.Join(home, ".roomify", "state.db")
}
