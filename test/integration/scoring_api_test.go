package integration

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boskovicgroup/bottchercomplexity/internal/application/scoring"
	"github.com/boskovicgroup/bottchercomplexity/internal/config"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/boskovicgroup/bottchercomplexity/internal/interfaces/http"
	"github.com/boskovicgroup/bottchercomplexity/internal/interfaces/http/handlers"
	"github.com/boskovicgroup/bottchercomplexity/pkg/client"
)

const benzeneMol = `benzene
  testdata

  6  6  0  0  0  0  0  0  0  0999 V2000
    0.0000    1.4000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.2124    0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.2124   -0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    0.0000   -1.4000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
   -1.2124   -0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
   -1.2124    0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  4  0
  2  3  4  0
  3  4  4  0
  4  5  4  0
  5  6  4  0
  6  1  4  0
M  END
`

// newTestServer stands up the full route tree over a real listener so the
// client exercises the same wire path as production callers.
func newTestServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()

	logger := logging.NewNopLogger()
	collector, err := prometheus.NewMetricsCollector(
		prometheus.CollectorConfig{Namespace: "bottcher"}, logger)
	require.NoError(t, err)
	appMetrics := prometheus.NewAppMetrics(collector)

	svc := scoring.NewService(config.ScoringConfig{}, logger, appMetrics)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		ScoreHandler:     handlers.NewScoreHandler(svc, logger, 1<<20),
		HealthHandler:    handlers.NewHealthHandler("test"),
		Logger:           logger,
		MetricsCollector: collector,
		AppMetrics:       appMetrics,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c, err := client.NewClient(srv.URL, client.WithRetryMax(0))
	require.NoError(t, err)
	return srv, c
}

func TestScoringAPI_SingleMolecule(t *testing.T) {
	_, c := newTestServer(t)

	result, err := c.Score(context.Background(), benzeneMol, false)
	require.NoError(t, err)
	assert.Equal(t, "benzene", result.Name)
	assert.Equal(t, 6, result.AtomCount)
	assert.InDelta(t, 12.9658, result.Score, 1e-3)
	assert.Empty(t, result.Contributions)
}

func TestScoringAPI_Diagnostics(t *testing.T) {
	_, c := newTestServer(t)

	result, err := c.Score(context.Background(), benzeneMol, true)
	require.NoError(t, err)
	require.Len(t, result.Contributions, 1)
	assert.Equal(t, "C", result.Contributions[0].Element)
	assert.Equal(t, 3, result.Contributions[0].Full)
}

func TestScoringAPI_MalformedMolfile(t *testing.T) {
	_, c := newTestServer(t)

	_, err := c.Score(context.Background(), "not a molfile", false)
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "MOL_002", apiErr.Code)
	assert.True(t, apiErr.IsClientError())
}

func TestScoringAPI_Batch(t *testing.T) {
	_, c := newTestServer(t)

	stream := benzeneMol + "$$$$\n" + "broken\nrecord\n$$$$\n"
	result, err := c.ScoreBatch(context.Background(), strings.NewReader(stream), false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Scored)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Entries, 2)
	require.NotNil(t, result.Entries[0].Result)
	assert.InDelta(t, 12.9658, result.Entries[0].Result.Score, 1e-3)
	require.NotNil(t, result.Entries[1].Error)
	assert.Equal(t, "MOL_002", result.Entries[1].Error.Code)
}

func TestScoringAPI_Health(t *testing.T) {
	_, c := newTestServer(t)

	assert.NoError(t, c.Health(context.Background()))
	assert.NoError(t, c.Ready(context.Background()))
}
