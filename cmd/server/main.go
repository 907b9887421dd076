// Command server is the entry point for the demo MCP tool server. It builds
// the capability registry once, attaches it to a stdio MCP server and blocks
// until the transport closes.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/su-myeong/my-mcp-server-20250925/pkg/config"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/prompts/codereview"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/registry"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/resources/info"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools/calculator"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools/clock"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools/greeting"
	"github.com/su-myeong/my-mcp-server-20250925/pkg/tools/image"
)

var rootCmd = &cobra.Command{
	Use:          "my-mcp-server",
	Short:        "Demo MCP tool server speaking the protocol over stdio",
	SilenceUsage: true,
	RunE:         run,
}

func run(cmd *cobra.Command, args []string) error {
	// Load environment from .env if present. stdout belongs to the
	// protocol, so all logging goes to stderr.
	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Warn("configuration warning", "error", err)
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		return fmt.Errorf("registry setup: %w", err)
	}

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(true),
		server.WithLogging(),
	)
	reg.Attach(mcpServer)

	log.Info("server started, waiting for requests", "name", cfg.Server.Name, "version", cfg.Server.Version)
	if err := server.ServeStdio(mcpServer); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// buildRegistry registers every capability. Registration happens exactly
// once, before serving; a duplicate name is a startup failure.
func buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New(cfg.Server.Name, cfg.Server.Version)

	for _, tool := range []tools.Tool{
		greeting.New(),
		calculator.New(),
		clock.New(),
		image.New(cfg),
	} {
		if err := reg.RegisterTool(tool.Handle(), tool.Handler); err != nil {
			return nil, err
		}
	}

	if err := reg.RegisterResource(info.Resource(), info.Handler(reg)); err != nil {
		return nil, err
	}

	if err := reg.RegisterPrompt(codereview.Prompt(), codereview.Handler, codereview.Options()...); err != nil {
		return nil, err
	}

	return reg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
