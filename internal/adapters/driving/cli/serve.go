package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API",
	Long: `Start the REST API on the configured address (http.addr, default
127.0.0.1:8080). Requests must carry X-Actor-ID and, for supervisors,
X-Actor-Role: supervisor. Metrics are served at /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides http.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if processService == nil {
		return errors.New("process service not configured")
	}

	settings := domain.DefaultAppSettings()
	maxUpload := func() int64 { return domain.DefaultMaxDocumentSize }
	if settingsService != nil {
		current, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *current
		maxUpload = settingsService.MaxDocumentSize
	}
	addr := settings.HTTP.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Process:       processService,
		Meeting:       meetingService,
		Document:      documentService,
		Party:         partyService,
		MaxUploadSize: maxUpload,
	}, httpapi.Options{
		RateLimit: settings.HTTP.RateLimit,
		Burst:     settings.HTTP.Burst,
		Registry:  metricsRegistry,
		Logger:    logger.Slog(),
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if configWatcher != nil {
		go func() {
			err := configWatcher.Watch(ctx, func() {
				logger.Info("settings reloaded")
			})
			if err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	cmd.Printf("Serving on http://%s\n", addr)
	return server.Run(ctx, addr)
}
