package presenter_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/api/http/presenter"
	"github.com/artem13815/docmaker/pkg/apperrors"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.NotFound("resume", 4), http.StatusNotFound},
		{apperrors.Validation("bad %s", "input"), http.StatusBadRequest},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.Unavailable("pdf", "install chromium", nil), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, presenter.Status(tc.err), tc.err.Error())
	}
}

func failBody(t *testing.T, err error) (int, presenter.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return presenter.Fail(c, err, "failed") })
	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, testErr)
	raw, _ := io.ReadAll(resp.Body)
	var body presenter.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestFailUnavailableCarriesRemediation(t *testing.T) {
	status, body := failBody(t, apperrors.Unavailable("pdf export", "install chromium", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.True(t, body.Unavailable)
	assert.Equal(t, "install chromium", body.Remediation)
}

func TestFailHidesInternalErrors(t *testing.T) {
	status, body := failBody(t, errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "failed", body.Message)
}
