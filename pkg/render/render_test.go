package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderUndefinedIsEmpty(t *testing.T) {
	e := New()
	out, err := e.Render(`[{{ missing }}][{{ profile.display_name }}][{{ proposal.client.main_contact }}]`, map[string]any{
		"profile":  nil,
		"proposal": map[string]any{"client": nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "[][][]", out)
}

func TestRenderLoopsAndConditionals(t *testing.T) {
	e := New()
	src := `{% for exp in experiences %}{{ forloop.Counter }}:{{ exp.project_name }}{% if exp.is_current %}*{% endif %};{% endfor %}`
	out, err := e.Render(src, map[string]any{
		"experiences": []map[string]any{
			{"project_name": "Bridge", "is_current": false},
			{"project_name": "Tunnel", "is_current": true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1:Bridge;2:Tunnel*;", out)
}

func TestRenderEscapesHTML(t *testing.T) {
	out, err := New().Render(`{{ text }}`, map[string]any{"text": "<b>x</b>"})
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;x&lt;/b&gt;", out)
}

func TestCompileRejectsBrokenSource(t *testing.T) {
	e := New()
	assert.Error(t, e.Compile(`{% for x in items %}`))
	assert.NoError(t, e.Compile(`{{ a }}`))
}

func TestCompileRejectsFilesystemTags(t *testing.T) {
	assert.Error(t, New().Compile(`{% ssi "/etc/passwd" %}`))
}

func TestBundledTemplatesRender(t *testing.T) {
	e := New()

	resumeSrc, err := Bundled(DefaultResumeTemplate)
	require.NoError(t, err)
	out, err := e.Render(resumeSrc, map[string]any{
		"profile":     nil,
		"proposal":    nil,
		"experiences": []map[string]any{{"project_name": "Harbor Expansion", "tags": []string{"marine"}}},
		"resume":      map[string]any{"generation_date": "March 04, 2025"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Harbor Expansion")
	assert.Contains(t, out, "Generated March 04, 2025")

	sheetSrc, err := Bundled(ProjectSheetTemplate)
	require.NoError(t, err)
	out, err = e.Render(sheetSrc, map[string]any{
		"project":        map[string]any{"name": "Ring Road", "contract_value": 1500.5},
		"client":         nil,
		"contact":        nil,
		"user":           map[string]any{"name": "", "email": "pm@example.com"},
		"generated_date": "March 04, 2025 at 09:15 AM",
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "$1500.50"))
	assert.Contains(t, out, "pm@example.com")
	assert.NotContains(t, out, "<h2>Client</h2>")

	_, err = Bundled("nope.html")
	assert.Error(t, err)
}
