package document

import (
	"context"
	"fmt"

	"github.com/billing/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRenderer selects the renderer named in cfg
func NewRenderer(cfg config.DocumentConfig, currency string, logger *zap.Logger) (Renderer, error) {
	switch cfg.Renderer {
	case "", "placeholder":
		return NewPlaceholderRenderer(), nil
	case "chromedp":
		engine, err := NewTemplateEngine(currency)
		if err != nil {
			return nil, err
		}
		return NewChromedpRenderer(engine, ChromedpConfig{
			RemoteURL: cfg.ChromeRemoteURL,
			Timeout:   cfg.RenderTimeout,
			NoSandbox: true,
			Logger:    logger,
		})
	default:
		return nil, fmt.Errorf("unknown document renderer %q", cfg.Renderer)
	}
}

// NewArchive returns the S3 archive when archiving is enabled, nil otherwise
func NewArchive(ctx context.Context, cfg config.DocumentConfig, storage config.StorageConfig, logger *zap.Logger) (Archive, error) {
	if !cfg.ArchiveEnabled {
		return nil, nil
	}
	archive, err := NewS3Archive(ctx, storage, logger)
	if err != nil {
		return nil, err
	}
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return archive, nil
}
