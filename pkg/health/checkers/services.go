package checkers

import (
	"context"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

// BrowserLocator finds the headless browser used for PDF export.
type BrowserLocator interface {
	Browser() (string, error)
}

// BrowserChecker reports whether PDF export can start a browser.
type BrowserChecker struct{ pdf BrowserLocator }

func NewBrowserChecker(pdf BrowserLocator) *BrowserChecker { return &BrowserChecker{pdf: pdf} }

func (c *BrowserChecker) Name() string { return "pdf_browser" }

func (c *BrowserChecker) Check(context.Context) error {
	_, err := c.pdf.Browser()
	return err
}

// AIChecker reports whether the text-generation client is configured.
type AIChecker struct {
	configured func() bool
}

func NewAIChecker(configured func() bool) *AIChecker { return &AIChecker{configured: configured} }

func (c *AIChecker) Name() string { return "ai" }

func (c *AIChecker) Check(context.Context) error {
	if c.configured == nil || !c.configured() {
		return apperrors.Unavailable("ai rewrite", "set OPENROUTER_API_KEY (or OPENAI_API_KEY)", nil)
	}
	return nil
}
