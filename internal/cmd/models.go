package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mootlabs/moot/internal/client"
	"github.com/mootlabs/moot/internal/config"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available providers and models",
	Long: `Models fetches the provider catalog from the debate service. The
fetch retries with backoff; if the service stays unreachable the
catalog is simply empty.`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(cfg)
	defer func() { _ = logger.Close() }()

	c := client.New(cfg.API.BaseURL, cfg.API.Token, logger)
	catalog := c.FetchCatalog(ctx)

	if len(catalog.Providers) == 0 {
		fmt.Println("no providers available")
		return nil
	}

	for _, provider := range catalog.Providers {
		fmt.Println(provider.Name)
		for _, model := range provider.Models {
			fmt.Printf("  %s  %s\n", model.ID, model.Name)
		}
	}
	return nil
}
