// Package chromeprinter prints HTML pages to PDF with headless Chrome.
package chromeprinter

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/user/framegrid/pkg/pipeline"
	"github.com/user/framegrid/pkg/ports"
)

// Options configures the printer.
type Options struct {
	ChromePath string
	// Sandbox keeps Chrome's sandbox enabled. Containers usually need it off.
	Sandbox bool
	// AutoInstall fetches Chromium through Playwright when none is found.
	AutoInstall bool
}

// Printer implements ports.Printer.
type Printer struct {
	opts   Options
	logger ports.Logger

	mu         sync.Mutex
	chromePath string
}

// New creates a new Printer.
func New(opts Options, logger ports.Logger) *Printer {
	return &Printer{
		opts:   opts,
		logger: logger.WithComponent("chrome"),
	}
}

// Ensure Printer implements ports.Printer
var _ ports.Printer = (*Printer)(nil)

// Print loads html in a fresh headless browser and returns it as PDF.
func (p *Printer) Print(ctx context.Context, html string, geom pipeline.LayoutGeometry) ([]byte, error) {
	dir, err := os.MkdirTemp("", "framegrid_print_")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pagePath := filepath.Join(dir, "sheet.html")
	if err := os.WriteFile(pagePath, []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("write print page: %w", err)
	}

	chromePath, err := p.resolve()
	if err != nil {
		return nil, err
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, p.allocatorOptions(chromePath)...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	params := PrintParams(geom)
	p.logger.Debug("Printing %.2fx%.2fin, landscape=%t", params.PaperWidth, params.PaperHeight, params.Landscape)

	var pdf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(pagePath)),
		chromedp.WaitReady("img.frame", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = params.Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("print to PDF: %w", err)
	}

	return pdf, nil
}

// resolve locates Chrome once per printer, installing it when allowed.
func (p *Printer) resolve() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.chromePath != "" {
		return p.chromePath, nil
	}

	path := ResolveChromePath(p.opts.ChromePath)
	if path == "" {
		if !p.opts.AutoInstall {
			return "", ErrChromeNotFound
		}
		p.logger.Info("Chrome not found, installing Chromium")
		installed, err := InstallChromium()
		if err != nil {
			return "", err
		}
		path = installed
	}

	p.logger.Debug("Using Chrome at %s", path)
	p.chromePath = path
	return path, nil
}

func (p *Printer) allocatorOptions(chromePath string) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("mute-audio", true),
	)
	if !p.opts.Sandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return append(opts, chromedp.ExecPath(chromePath))
}

// PrintParams maps the layout geometry to print settings. Paper is given in
// portrait terms and rotated by the landscape flag; the page's own @page
// rule takes precedence when Chrome supports it.
func PrintParams(geom pipeline.LayoutGeometry) *page.PrintToPDFParams {
	short := math.Min(geom.PageWidthIn, geom.PageHeightIn)
	long := math.Max(geom.PageWidthIn, geom.PageHeightIn)
	if short <= 0 || long <= 0 {
		short, long = pipeline.LetterShortIn, pipeline.LetterLongIn
	}

	return page.PrintToPDF().
		WithLandscape(geom.Orientation == pipeline.Landscape).
		WithPaperWidth(short).
		WithPaperHeight(long).
		WithPrintBackground(true).
		WithMarginTop(0).
		WithMarginBottom(0).
		WithMarginLeft(0).
		WithMarginRight(0).
		WithPreferCSSPageSize(true)
}
