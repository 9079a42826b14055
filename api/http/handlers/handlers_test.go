package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/apperrors"
	"github.com/artem13815/docmaker/pkg/resume"
	"github.com/artem13815/docmaker/pkg/rewrite"
)

// fakeResumes overrides the methods a test needs; anything else panics.
type fakeResumes struct {
	resume.UseCase

	get        func(id int64) (resume.View, error)
	regenerate func(id int64, overrides map[string]any) (resume.Resume, error)
	rewrite    func(id, expID int64, opts resume.RewriteOptions) (resume.RewriteOutcome, error)
	export     func(id int64) (string, []byte, error)
}

func (f *fakeResumes) Get(_ context.Context, id int64) (resume.View, error) { return f.get(id) }

func (f *fakeResumes) Regenerate(_ context.Context, id int64, overrides map[string]any) (resume.Resume, error) {
	return f.regenerate(id, overrides)
}

func (f *fakeResumes) Rewrite(_ context.Context, id, expID int64, opts resume.RewriteOptions) (resume.RewriteOutcome, error) {
	return f.rewrite(id, expID, opts)
}

func (f *fakeResumes) ExportPDF(_ context.Context, id int64) (string, []byte, error) { return f.export(id) }

func resumeApp(f *fakeResumes) *fiber.App {
	app := fiber.New()
	h := NewResumeHandler(f, nil)
	app.Get("/resumes/:id", h.Get)
	app.Post("/resumes/:id/regenerate", h.Regenerate)
	app.Post("/resumes/:id/experiences/:experienceId/rewrite", h.Rewrite)
	app.Post("/resumes/:id/experiences/:experienceId/rewrite-with-prompt", h.RewriteWithPrompt)
	app.Get("/resumes/:id/pdf", h.PDF)
	return app
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decodeError(t *testing.T, raw []byte) presenter.ErrorResponse {
	t.Helper()
	var e presenter.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestGetResumeStatuses(t *testing.T) {
	f := &fakeResumes{get: func(id int64) (resume.View, error) {
		if id == 404 {
			return resume.View{}, apperrors.NotFound("resume", id)
		}
		return resume.View{Resume: resume.Resume{ID: id, Alias: "Lead engineer"}}, nil
	}}
	app := resumeApp(f)

	resp, _ := do(t, app, http.MethodGet, "/resumes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := do(t, app, http.MethodGet, "/resumes/404", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decodeError(t, raw).Message, "resume 404")

	resp, raw = do(t, app, http.MethodGet, "/resumes/7", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var v resume.View
	require.NoError(t, json.Unmarshal(raw, &v))
	assert.Equal(t, "Lead engineer", v.Alias)
}

func TestRegeneratePassesOverrides(t *testing.T) {
	var got map[string]any
	f := &fakeResumes{regenerate: func(id int64, overrides map[string]any) (resume.Resume, error) {
		got = overrides
		return resume.Resume{ID: id}, nil
	}}
	app := resumeApp(f)

	resp, _ := do(t, app, http.MethodPost, "/resumes/3/regenerate", map[string]any{
		"overrides": map[string]any{"profile": map[string]any{"current_title": "Principal"}},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, got, "profile")

	got = map[string]any{"stale": true}
	resp, _ = do(t, app, http.MethodPost, "/resumes/3/regenerate", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, got, "empty body means no overrides")
}

func TestRewriteUnavailable(t *testing.T) {
	f := &fakeResumes{rewrite: func(int64, int64, resume.RewriteOptions) (resume.RewriteOutcome, error) {
		return resume.RewriteOutcome{}, apperrors.Unavailable("ai rewrite", "Set OPENROUTER_API_KEY", nil)
	}}
	resp, raw := do(t, resumeApp(f), http.MethodPost, "/resumes/1/experiences/2/rewrite", nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	e := decodeError(t, raw)
	assert.True(t, e.Unavailable)
	assert.Equal(t, "Set OPENROUTER_API_KEY", e.Remediation)
}

func TestRewriteFailureIsStillOK(t *testing.T) {
	f := &fakeResumes{rewrite: func(_ int64, expID int64, _ resume.RewriteOptions) (resume.RewriteOutcome, error) {
		return resume.RewriteOutcome{
			ExperienceID: expID,
			Result:       rewrite.Result{Success: false, Content: "original", Original: "original", Error: "timeout"},
		}, nil
	}}
	resp, raw := do(t, resumeApp(f), http.MethodPost, "/resumes/1/experiences/2/rewrite", map[string]string{"model": "openai/gpt-4"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out resume.RewriteOutcome
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.Saved)
	assert.Equal(t, "original", out.Result.Content)
}

func TestRewriteWithPromptRequiresInstruction(t *testing.T) {
	var opts resume.RewriteOptions
	f := &fakeResumes{rewrite: func(_ int64, _ int64, o resume.RewriteOptions) (resume.RewriteOutcome, error) {
		opts = o
		return resume.RewriteOutcome{}, nil
	}}
	resp, _ := do(t, resumeApp(f), http.MethodPost, "/resumes/1/experiences/2/rewrite-with-prompt",
		map[string]string{"custom_prompt": "focus on budgets"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, opts.RequireInstruction)
	assert.Equal(t, "focus on budgets", opts.Instruction)
}

func TestResumePDF(t *testing.T) {
	f := &fakeResumes{export: func(id int64) (string, []byte, error) {
		return "resume_9.pdf", []byte("%PDF-1.4 fake"), nil
	}}
	resp, raw := do(t, resumeApp(f), http.MethodGet, "/resumes/9/pdf", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="resume_9.pdf"`)
	assert.Equal(t, "%PDF-1.4 fake", string(raw))
}

func TestSendPDFEscapesFilename(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return sendPDF(c, `Pier "B" upgrade_sheet_4.pdf`, []byte("%PDF"))
	})
	resp, _ := do(t, app, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	cd := resp.Header.Get(fiber.HeaderContentDisposition)
	assert.True(t, strings.HasPrefix(cd, `attachment; filename="`), cd)
	assert.True(t, strings.HasSuffix(cd, `.pdf"`), cd)
	assert.Equal(t, 2, strings.Count(cd, `"`), "inner quotes must be escaped: %s", cd)
}

type fakeAIStatus struct{}

func (fakeAIStatus) Status() rewrite.Status {
	return rewrite.Status{Provider: rewrite.Provider, Model: "openai/gpt-3.5-turbo"}
}

func TestAIModels(t *testing.T) {
	app := fiber.New()
	h := NewAIHandler(fakeAIStatus{})
	app.Get("/ai/models", h.Models)

	resp, raw := do(t, app, http.MethodGet, "/ai/models", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out modelsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Len(t, out.Models, len(rewrite.Models))
	assert.Equal(t, "openai/gpt-3.5-turbo", out.Default)
}

func TestProjectSheetsNeedUser(t *testing.T) {
	app := fiber.New()
	h := NewProjectSheetHandler(nil)
	app.Get("/project-sheets", h.List)

	resp, _ := do(t, app, http.MethodGet, "/project-sheets", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPreviewValidatesInput(t *testing.T) {
	app := fiber.New()
	h := NewTemplateHandler(nil, &fakeResumes{})
	app.Post("/templates/preview", h.Preview)

	resp, _ := do(t, app, http.MethodPost, "/templates/preview", map[string]any{"resume_id": 0, "content": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseLimitOffset(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		l, o := parseLimitOffset(c, defaultLimit)
		return c.JSON(fiber.Map{"limit": l, "offset": o})
	})
	cases := map[string][2]int{
		"/":                     {50, 0},
		"/?limit=10&offset=20":  {10, 20},
		"/?limit=500":           {50, 0},
		"/?limit=-1&offset=-5":  {50, 0},
		"/?limit=abc&offset=xy": {50, 0},
	}
	for target, want := range cases {
		_, raw := do(t, app, http.MethodGet, target, nil)
		var got map[string]int
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, want[0], got["limit"], target)
		assert.Equal(t, want[1], got["offset"], target)
	}
}

func TestParseDate(t *testing.T) {
	s := func(v string) *string { return &v }

	d, err := parseDate("date_started", s("2023-05-01"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), *d)

	d, err = parseDate("date_started", s("2023-05-01T10:00:00+02:00"))
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	d, err = parseDate("date_started", s(" "))
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDate("date_started", s("01/05/2023"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "date_started")
}
