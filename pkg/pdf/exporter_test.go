package pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/apperrors"
)

// onePagePDF builds a minimal, well formed single page document.
func onePagePDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>",
	}
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return []byte(b.String())
}

func TestPageCount(t *testing.T) {
	n, err := PageCount(onePagePDF())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = PageCount([]byte("<html>not a pdf</html>"))
	assert.Error(t, err)
}

func TestBrowserMissingChromePath(t *testing.T) {
	e := NewExporter(filepath.Join(t.TempDir(), "no-such-chrome"), 0, nil)

	_, err := e.Browser()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, Remediation, apperrors.Remediation(err))
}

func TestExportWithoutBrowserIsUnavailable(t *testing.T) {
	e := NewExporter("", 0, nil)
	var looked []string
	e.lookPath = func(name string) (string, error) {
		looked = append(looked, name)
		return "", errors.New("not found")
	}

	_, err := e.Export(context.Background(), "<html><body>x</body></html>")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, browserNames, looked)
}

func TestBrowserPrefersFirstFound(t *testing.T) {
	e := NewExporter("", 0, nil)
	e.lookPath = func(name string) (string, error) {
		if name == "chromium" {
			return "/usr/bin/chromium", nil
		}
		return "", errors.New("not found")
	}
	p, err := e.Browser()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/chromium", p)
}
