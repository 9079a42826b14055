package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/docmaker/pkg/health"
	"github.com/artem13815/docmaker/pkg/health/checkers"
)

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Name() string                { return f.name }
func (f fakeChecker) Check(context.Context) error { return f.err }

type fakeBrowser struct{ err error }

func (f fakeBrowser) Browser() (string, error) { return "/usr/bin/chromium", f.err }

func TestReadyAllHealthy(t *testing.T) {
	svc := health.NewService([]health.Checker{fakeChecker{name: "postgres"}},
		checkers.NewBrowserChecker(fakeBrowser{}),
		checkers.NewAIChecker(func() bool { return true }))

	rep, err := svc.Ready(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.Ready)
	require.Len(t, rep.Components, 3)
	for _, c := range rep.Components {
		assert.Equal(t, "ok", c.Status, c.Name)
	}
	assert.True(t, rep.Components[0].Required)
	assert.False(t, rep.Components[1].Required)
}

func TestOptionalFailureKeepsReady(t *testing.T) {
	svc := health.NewService([]health.Checker{fakeChecker{name: "postgres"}},
		checkers.NewBrowserChecker(fakeBrowser{err: errors.New("no chromium")}),
		checkers.NewAIChecker(nil))

	rep, err := svc.Ready(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.Ready)
	assert.Equal(t, "unavailable", rep.Components[1].Status)
	assert.Contains(t, rep.Components[1].Details, "no chromium")
	assert.Equal(t, "unavailable", rep.Components[2].Status)
}

func TestRequiredFailure(t *testing.T) {
	svc := health.NewService([]health.Checker{fakeChecker{name: "postgres", err: errors.New("connection refused")}})

	rep, err := svc.Ready(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
	assert.False(t, rep.Ready)
}
