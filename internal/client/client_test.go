package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Matrix/internal/api"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

func newTestServer(t *testing.T) (*HTTPClient, *scoring.Engine) {
	t.Helper()
	e := scoring.NewEngine(nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(api.NewRouter(e, store.NewMemoryJournal(10), nil, api.RouterConfig{}, logger))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", "test-client", ""), e
}

func TestListAndAnalysis(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	criteria, err := c.ListCriteria(ctx)
	require.NoError(t, err)
	assert.Len(t, criteria, 10)

	a, err := c.Analysis(ctx)
	require.NoError(t, err)
	assert.Equal(t, scoring.OptionI, a.Best)
	assert.Equal(t, 67, a.TotalWeight)
}

func TestMutations(t *testing.T) {
	c, e := newTestServer(t)
	ctx := context.Background()

	m, err := c.AddCriterion(ctx, "Climate")
	require.NoError(t, err)
	require.True(t, m.Applied)
	assert.Equal(t, 11, m.ID)

	m, err = c.UpdateWeight(ctx, m.ID, 2)
	require.NoError(t, err)
	assert.True(t, m.Applied)
	assert.Equal(t, 69, m.Analysis.TotalWeight)

	m, err = c.UpdateScore(ctx, 11, scoring.OptionB, 5)
	require.NoError(t, err)
	assert.True(t, m.Applied)

	m, err = c.Rename(ctx, 11, "Weather")
	require.NoError(t, err)
	assert.True(t, m.Applied)

	got, ok := e.Criterion(11)
	require.True(t, ok)
	assert.Equal(t, "Weather", got.Name)
	assert.Equal(t, 2, got.Weight)
	assert.Equal(t, 5, got.Scores[scoring.OptionB])

	m, err = c.RemoveCriterion(ctx, 11)
	require.NoError(t, err)
	assert.True(t, m.Applied)
	assert.Equal(t, 67, m.Analysis.TotalWeight)

	m, err = c.RemoveCriterion(ctx, 11)
	require.NoError(t, err)
	assert.False(t, m.Applied)

	m, err = c.Reset(ctx)
	require.NoError(t, err)
	assert.True(t, m.Applied)
}

func TestErrorStatus(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.Rename(context.Background(), 1, "")
	require.NoError(t, err)

	err = c.doReq(context.Background(), "GET", "/criteria/999", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
