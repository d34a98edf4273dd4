package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mediavault/internal/client"
)

// app carries the global flags into every subcommand.
type app struct {
	server  string
	token   string
	jsonOut bool
	out     io.Writer
}

func (a *app) client() *client.Client {
	return client.New(a.server, client.WithToken(a.token))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand(os.Stdout)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "damctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}
	cmd := &cobra.Command{
		Use:   "damctl",
		Short: "Command line client for the mediavault API",
		Long: `damctl browses and edits a mediavault catalog: assets, collections and tags.
Write commands need --token when the server has JWT_SECRET set; "damctl token" mints one.`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVarP(&a.server, "server", "s", envOr("MEDIAVAULT_URL", "http://localhost:5000"), "API base URL")
	cmd.PersistentFlags().StringVar(&a.token, "token", os.Getenv("MEDIAVAULT_TOKEN"), "Bearer token for write commands")
	cmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print raw JSON instead of tables")

	cmd.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newBulkUpdateCmd(a),
		newBulkDeleteCmd(a),
		newCollectionsCmd(a),
		newTagsCmd(a),
		newWatchCmd(a),
		newTokenCmd(a),
	)
	return cmd
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
