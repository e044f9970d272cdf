package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-build-optimizer/internal/errors"
	"github.com/KirkDiggler/rpg-build-optimizer/internal/repositories/catalog"
)

var importFlags struct {
	items string
	ids   string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load an item database into Redis",
	Long:  `Parse the item database and optional WynnBuilder id table and replace the catalog stored in Redis.`,
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFlags.items, "items", "", "item database JSON (defaults to catalog.items_path)")
	importCmd.Flags().StringVar(&importFlags.ids, "ids", "", "WynnBuilder id table JSON (defaults to catalog.ids_path)")
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if cmd.Flags().Changed("items") {
		cfg.Catalog.ItemsPath = importFlags.items
	}
	if cmd.Flags().Changed("ids") {
		cfg.Catalog.IDsPath = importFlags.ids
	}
	if cfg.Redis.Address == "" {
		return errors.InvalidArgument("import needs redis.address (or BUILDOPT_REDIS_ADDRESS)")
	}

	ctx := cmd.Context()
	client, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	repo, err := catalog.NewRedis(&catalog.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	_, err = importFile(ctx, repo, cfg.Catalog.ItemsPath, cfg.Catalog.IDsPath)
	return err
}
