package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Matrix/internal/api"
	"github.com/MikeSquared-Agency/Matrix/internal/config"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

func TestParseRows(t *testing.T) {
	in := `name,weight,A,B,I,N
# housing first
House, 7, 2, 2, 5, 2
"Tax, outcome",4,1,2,2,3
`
	rows, err := ParseRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "House", rows[0].Name)
	assert.Equal(t, 7, rows[0].Weight)
	assert.Equal(t, map[scoring.Option]int{"A": 2, "B": 2, "I": 5, "N": 2}, rows[0].Scores)
	assert.Equal(t, "Tax, outcome", rows[1].Name)
	assert.Equal(t, 3, rows[1].Scores[scoring.OptionN])
}

func TestParseRowsWithoutHeader(t *testing.T) {
	rows, err := ParseRows(strings.NewReader("Income,9,4,3,1,2\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Income", rows[0].Name)
}

func TestParseRowsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too few fields", "House,7,2,2,5\n"},
		{"too many fields", "House,7,2,2,5,2,1\n"},
		{"bad weight", "House,heavy,2,2,5,2\n"},
		{"bad score", "House,7,2,x,5,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRows(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestParseRowsEmpty(t *testing.T) {
	rows, err := ParseRows(strings.NewReader("# nothing yet\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func testRows(n int) string {
	var b strings.Builder
	b.WriteString("name,weight,A,B,I,N\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "Criterion %02d,%d,%d,%d,%d,%d\n", i, i%21, i%6, (i+1)%6, (i+2)%6, (i+3)%6)
	}
	return b.String()
}

func TestReplaceCriteriaUnderDefaultRateLimit(t *testing.T) {
	t.Setenv("MATRIX_RATE_LIMIT", "")
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, 120, cfg.Server.RateLimitPerMinute)

	e := scoring.NewEngine(nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := api.NewRouter(e, store.NewMemoryJournal(10), nil, api.RouterConfig{
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	}, logger)
	srv := httptest.NewServer(router)
	defer srv.Close()

	rows, err := ParseRows(strings.NewReader(testRows(40)))
	require.NoError(t, err)

	c := NewHTTPClient(srv.URL, "seeder", "")
	require.NoError(t, c.ReplaceCriteria(context.Background(), rows))

	got := e.Criteria()
	require.Len(t, got, 40)
	for i, crit := range got {
		n := i + 1
		assert.Equal(t, n, crit.ID)
		assert.Equal(t, fmt.Sprintf("Criterion %02d", n), crit.Name)
		assert.Equal(t, n%21, crit.Weight, "weight of %s", crit.Name)
		assert.Equal(t, map[scoring.Option]int{
			scoring.OptionA: n % 6,
			scoring.OptionB: (n + 1) % 6,
			scoring.OptionI: (n + 2) % 6,
			scoring.OptionN: (n + 3) % 6,
		}, crit.Scores, "scores of %s", crit.Name)
	}
}

func TestReplaceCriteriaStopsOnUnappliedRow(t *testing.T) {
	c, e := newTestServer(t)

	rows := []Row{
		{Name: "Climate", Weight: 4, Scores: map[scoring.Option]int{}},
		{Name: "  ", Weight: 4, Scores: map[scoring.Option]int{}},
		{Name: "Rent", Weight: 2, Scores: map[scoring.Option]int{}},
	}
	err := c.ReplaceCriteria(context.Background(), rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not applied")

	got := e.Criteria()
	require.Len(t, got, 1)
	assert.Equal(t, "Climate", got[0].Name)
}

func TestRetriesRateLimitedRequests(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"House","weight":7}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "")
	criteria, err := c.ListCriteria(context.Background())
	require.NoError(t, err)
	require.Len(t, criteria, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", "")
	_, err := c.ListCriteria(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, int32(maxAttempts), atomic.LoadInt32(&calls))
}
