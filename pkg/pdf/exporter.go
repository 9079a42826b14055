// Package pdf prints rendered HTML documents to PDF with a headless Chrome.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	lpdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/logger"
)

const Remediation = "PDF generation requires a Chrome or Chromium browser. " +
	"Install chromium (or headless-shell) on the server, or set CHROME_PATH to the browser executable."

var browserNames = []string{
	"headless_shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"chrome",
}

// Page describes paper size and margins, in inches.
type Page struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// A4 with half inch margins.
var A4 = Page{Width: 8.27, Height: 11.69, MarginTop: 0.5, MarginBottom: 0.5, MarginLeft: 0.5, MarginRight: 0.5}

type Exporter struct {
	chromePath string
	timeout    time.Duration
	page       Page
	log        *zap.Logger

	lookPath func(string) (string, error)
}

func NewExporter(chromePath string, timeout time.Duration, log *zap.Logger) *Exporter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Exporter{
		chromePath: chromePath,
		timeout:    timeout,
		page:       A4,
		log:        logger.OrNop(log).Named("pdf"),
		lookPath:   exec.LookPath,
	}
}

// Browser returns the browser executable that will be used, or an
// unavailable error carrying remediation text.
func (e *Exporter) Browser() (string, error) {
	if e.chromePath != "" {
		if _, err := os.Stat(e.chromePath); err != nil {
			return "", apperrors.Unavailable("pdf export", Remediation, fmt.Errorf("CHROME_PATH %q: %w", e.chromePath, err))
		}
		return e.chromePath, nil
	}
	for _, name := range browserNames {
		if p, err := e.lookPath(name); err == nil {
			return p, nil
		}
	}
	return "", apperrors.Unavailable("pdf export", Remediation, errors.New("no chrome executable found"))
}

// Export prints html to PDF. An unavailable browser is reported with
// apperrors.ErrUnavailable; any other error is a rendering failure.
func (e *Exporter) Export(ctx context.Context, html string) ([]byte, error) {
	browser, err := e.Browser()
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ExecPath(browser),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, e.timeout)
	defer cancelRun()

	started := time.Now()
	var buf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(e.page.Width).
				WithPaperHeight(e.page.Height).
				WithMarginTop(e.page.MarginTop).
				WithMarginBottom(e.page.MarginBottom).
				WithMarginLeft(e.page.MarginLeft).
				WithMarginRight(e.page.MarginRight).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		e.log.Warn("print to pdf failed", zap.String("browser", browser), zap.Error(err))
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	pages, err := PageCount(buf)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	e.log.Debug("pdf exported",
		zap.Int("pages", pages),
		zap.Int("bytes", len(buf)),
		zap.Duration("took", time.Since(started)),
	)
	return buf, nil
}

// PageCount parses b and returns its number of pages.
func PageCount(b []byte) (int, error) {
	r, err := lpdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return 0, fmt.Errorf("invalid pdf output: %w", err)
	}
	n := r.NumPage()
	if n < 1 {
		return 0, errors.New("invalid pdf output: no pages")
	}
	return n, nil
}
