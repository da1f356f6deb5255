package main

import (
	"context"
	"os"

	"github.com/aretw0/typeset/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the render and session API over HTTP.
Sessions live in memory unless --redis (or TYPESET_REDIS_URL) names a Redis
server or --store-dir names a directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		redisURL, _ := cmd.Flags().GetString("redis")
		storeDir, _ := cmd.Flags().GetString("store-dir")
		ttl, _ := cmd.Flags().GetDuration("session-ttl")
		noBanner, _ := cmd.Flags().GetBool("no-banner")

		if !cmd.Flags().Changed("addr") {
			if env := os.Getenv("TYPESET_ADDR"); env != "" {
				addr = env
			}
		}
		if redisURL == "" {
			redisURL = os.Getenv("TYPESET_REDIS_URL")
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Serve(ctx, globalOptions(cmd), cli.ServeOptions{
			Addr:       addr,
			RedisURL:   redisURL,
			StoreDir:   storeDir,
			SessionTTL: ttl,
			NoBanner:   noBanner,
			Banner:     cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis URL for sessions (redis://host:port/db)")
	serveCmd.Flags().String("store-dir", "", "Keep sessions as YAML files in this directory")
	serveCmd.Flags().Duration("session-ttl", 0, "Expire idle Redis sessions after this long (0 keeps them)")
	serveCmd.Flags().Bool("no-banner", false, "Do not print the banner")
}
