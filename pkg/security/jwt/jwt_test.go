package jwt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/auth"
)

func TestGenerateAndParse(t *testing.T) {
	g := NewGenerator("s3cret", "docmaker", time.Hour)
	user := auth.User{ID: uuid.New(), Email: "pm@example.com"}

	tok, err := g.Generate(context.Background(), user)
	require.NoError(t, err)

	claims, err := Parse([]byte("s3cret"), tok, "docmaker")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "pm@example.com", claims.Email)

	_, err = Parse([]byte("other"), tok, "docmaker")
	assert.Error(t, err)
	_, err = Parse([]byte("s3cret"), tok, "someone-else")
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	g := NewGenerator("s3cret", "docmaker", time.Minute)
	g.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := g.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)
	_, err = Parse([]byte("s3cret"), tok, "")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	g := NewGenerator("s3cret", "docmaker", time.Hour)
	id := uuid.New()
	tok, err := g.Generate(context.Background(), auth.User{ID: id})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", NewAuthMiddleware("s3cret", "docmaker"), func(c *fiber.Ctx) error {
		uid, ok := UserID(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(uid.String())
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"bearer", "Bearer " + tok, http.StatusOK},
		{"bare token", tok, http.StatusOK},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, id.String(), string(body))
			}
		})
	}
}
