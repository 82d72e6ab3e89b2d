package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bandhan/bandhan/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	port int
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the draft to assistants over MCP",
	Long: `Start an MCP server (streamable HTTP) whose tools read, update and
validate the saved draft. Runs until interrupted.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().IntVarP(&mcpFlags.port, "port", "p", 0, "Port to listen on (default: any free port)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	srv := mcpserver.New(b.Drafts())
	if _, err := srv.Start(ctx, mcpFlags.port); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	fmt.Printf("MCP server listening on %s\n", srv.URL())

	<-ctx.Done()
	fmt.Println("\nShutting down...")
	return srv.Stop()
}
