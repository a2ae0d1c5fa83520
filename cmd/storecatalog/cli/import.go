package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/suteetoe/storecatalog/internal/importer"
	"github.com/suteetoe/storecatalog/internal/repository"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"github.com/suteetoe/storecatalog/pkg/metrics"
	"go.uber.org/zap"
)

func NewImportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import stores from a JSON file and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if file == "" {
				file = a.cfg.Import.File
			}

			catalogMetrics := metrics.NewCatalogMetrics(prometheus.NewRegistry(), a.cfg.Metrics.Prefix)
			repo := repository.New(a.db, catalogMetrics)

			ctx := logger.WithContext(cmd.Context(), a.log)
			result, err := importer.New(file, repo, catalogMetrics).Import(ctx)
			if err != nil {
				a.log.Error("Import failed", zap.String("file", file), zap.Int("imported", result.Imported), zap.Error(err))
				return fmt.Errorf("import %s: %w", file, err)
			}

			a.log.Info("Import finished", zap.String("file", file), zap.Int("imported", result.Imported))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "stores file to import (default is IMPORT_FILE)")

	return cmd
}
