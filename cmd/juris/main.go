// Command juris is the legal and disciplinary process workflow CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/custodia-labs/juris/internal/adapters/driven/audit"
	"github.com/custodia-labs/juris/internal/adapters/driven/blob/filesystem"
	"github.com/custodia-labs/juris/internal/adapters/driven/blob/s3"
	"github.com/custodia-labs/juris/internal/adapters/driven/config/file"
	"github.com/custodia-labs/juris/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/juris/internal/adapters/driving/cli"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/services"
	"github.com/custodia-labs/juris/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore(os.Getenv("JURIS_HOME"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	blobs, err := openBlobStore(ctx, settings.Blob)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sinks := audit.Fanout{store.AuditLog()}
	if settings.Audit.NATSURL != "" {
		publisher, err := audit.NewNATSPublisher(settings.Audit.NATSURL, settings.Audit.SubjectPrefix)
		if err != nil {
			// The local audit log still records everything.
			logger.Warn("audit events will not be published: %v", err)
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
		}
	}
	auditSink, err := audit.NewInstrumented(sinks, registry)
	if err != nil {
		return err
	}

	processService := services.NewProcessService(store, blobs, auditSink)
	processService.SetMaxDocumentSize(settingsService.MaxDocumentSize)
	documentService := services.NewDocumentService(store, blobs, auditSink)
	documentService.SetMaxDocumentSize(settingsService.MaxDocumentSize)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Process:   processService,
		Meeting:   services.NewMeetingService(store, auditSink),
		Document:  documentService,
		Party:     services.NewPartyService(store, auditSink),
		Committee: services.NewCommitteeService(store),
		Audit:     services.NewAuditService(store.AuditLog()),
		Settings:  settingsService,
		Metrics:   registry,
		Watcher:   configStore,
	})
	return cli.Execute(ctx)
}

func openBlobStore(ctx context.Context, cfg domain.BlobSettings) (driven.BlobStore, error) {
	switch cfg.Backend {
	case domain.BlobBackendS3:
		store, err := s3.NewStore(ctx, s3.Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
			Prefix:   cfg.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("opening s3 blob store: %w", err)
		}
		return store, nil
	default:
		store, err := filesystem.NewStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening blob store: %w", err)
		}
		return store, nil
	}
}
