package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/billing/backend/internal/domain/invoicing"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultRenderTimeout = 30 * time.Second

	// A4 portrait, in inches
	a4Width  = 8.27
	a4Height = 11.69
	a4Margin = 0.4
)

// ErrRenderTimeout is returned when Chrome does not produce a PDF in time
var ErrRenderTimeout = errors.New("document rendering timed out")

// ChromedpConfig contains configuration for the chromedp renderer
type ChromedpConfig struct {
	// RemoteURL is the DevTools websocket of a running Chrome.
	// If empty, a local headless browser is launched.
	RemoteURL string
	Timeout   time.Duration
	// NoSandbox is required when Chrome runs as root in a container
	NoSandbox bool
	Logger    *zap.Logger
}

// ChromedpRenderer prints the HTML invoice to PDF through the Chrome DevTools Protocol
type ChromedpRenderer struct {
	engine      *TemplateEngine
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a renderer backed by a shared browser allocator
func NewChromedpRenderer(engine *TemplateEngine, cfg ChromedpConfig) (*ChromedpRenderer, error) {
	if engine == nil {
		return nil, errors.New("template engine is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRenderTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{
		engine:  engine,
		timeout: cfg.Timeout,
		logger:  logger,
	}
	r.allocCtx, r.allocCancel = newAllocator(cfg)
	return r, nil
}

func newAllocator(cfg ChromedpConfig) (context.Context, context.CancelFunc) {
	if cfg.RemoteURL != "" {
		return chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	return chromedp.NewExecAllocator(context.Background(), opts...)
}

// Render builds the invoice HTML and prints it as an A4 PDF
func (r *ChromedpRenderer) Render(ctx context.Context, inv *invoicing.Invoice) ([]byte, string, error) {
	html, err := r.engine.RenderHTML(inv)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// stop the tab when the caller's deadline passes
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(a4Margin).
				WithMarginRight(a4Margin).
				WithMarginBottom(a4Margin).
				WithMarginLeft(a4Margin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, "", fmt.Errorf("%w after %v: %w", ErrRenderTimeout, r.timeout, err)
		}
		return nil, "", fmt.Errorf("chromedp print: %w", err)
	}
	if len(pdf) == 0 {
		return nil, "", errors.New("generated PDF is empty")
	}

	r.logger.Debug("invoice PDF rendered",
		zap.String("invoice_id", inv.ID.String()),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdf, ContentTypePDF, nil
}

// Close releases the browser allocator
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

var _ Renderer = (*ChromedpRenderer)(nil)
