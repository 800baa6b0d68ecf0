// Package main is the GophForms command-line client. It signs in and signs
// up against a running server, either once or from an interactive shell.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/atinyakov/GophForms/internal/client"
	"github.com/spf13/cobra"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	URL string
	CA  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, client.ErrRejected) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "gophforms",
		Short:         "GophForms client",
		Long:          "Sign in and sign up against a GophForms server.",
		Version:       fmt.Sprintf("%s (built %s)", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A")),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.URL, "url", "http://localhost:8080", "server base URL")
	cmd.PersistentFlags().StringVar(&opts.CA, "ca", "", "CA certificate used to verify an HTTPS server")

	cmd.AddCommand(newSignInCommand(opts))
	cmd.AddCommand(newSignUpCommand(opts))
	cmd.AddCommand(newShellCommand(opts))

	return cmd
}

func newSignInCommand(opts *rootOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := newShell(cmd, opts)
			if err != nil {
				return err
			}
			return sh.SignIn(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	return cmd
}

func newSignUpCommand(opts *rootOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := newShell(cmd, opts)
			if err != nil {
				return err
			}
			return sh.SignUp(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	return cmd
}

func newShellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := newShell(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Type 'help' for a list of commands.")
			return sh.Run(cmd.Context())
		},
	}
}

func newShell(cmd *cobra.Command, opts *rootOptions) (*client.Shell, error) {
	c, err := client.New(opts.URL, opts.CA)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	return client.NewShell(c, client.NewPrompter(cmd.InOrStdin(), out), out), nil
}
