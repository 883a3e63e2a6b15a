package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/excelaipro/excelaipro/internal/config"
	"github.com/excelaipro/excelaipro/internal/mcp"
	"github.com/excelaipro/excelaipro/internal/shared/llmutils"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Connect to the tool server and print its catalog",
	RunE:  runTools,
}

func runTools(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.MCPServerURL == "" {
		return fmt.Errorf("%w: EXCELAI_MCP_URL is not set", config.ErrConfiguration)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mcp.Dial(ctx, cfg.MCPEndpoint())
	if err != nil {
		return err
	}
	defer client.Close()

	remote, err := client.Tools(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Tool server: %s (%d tools)\n\n", cfg.MCPEndpoint(), len(remote))
	for _, t := range remote {
		fmt.Printf("  %-32s %s\n", t.Name(), llmutils.Truncate(t.Description(), 80))
	}
	return nil
}
