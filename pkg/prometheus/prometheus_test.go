package prometheus

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.ErrorIs(t, (&Config{}).Validate(), ErrInvalidConfig)

	cfg := DefaultConfig()
	cfg.Push.URL = "http://localhost:9091"
	cfg.Push.Job = ""
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrInvalidConfig)
}

func newCounter(t *testing.T, c *Client) *prometheus.CounterVec {
	t.Helper()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.Namespace(),
		Name:      "things_total",
		Help:      "things",
	}, []string{"kind"})
	require.NoError(t, c.Registerer().Register(counter))
	return counter
}

func TestWriteTextAndHandler(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	newCounter(t, c).WithLabelValues("a").Add(3)

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), `progression_things_total{kind="a"} 3`)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "progression_things_total")
}

func TestPush(t *testing.T) {
	var (
		gotPath string
		gotBody []byte
	)
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer gw.Close()

	cfg := DefaultConfig()
	cfg.Push.URL = gw.URL
	c, err := New(cfg)
	require.NoError(t, err)
	newCounter(t, c).WithLabelValues("b").Inc()

	require.NoError(t, c.Push(context.Background()))
	assert.Equal(t, "/metrics/job/progressionctl", gotPath)
	assert.NotEmpty(t, gotBody)

	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Close(), ErrClientClosed)
	assert.ErrorIs(t, c.Push(context.Background()), ErrClientClosed)
}

func TestPushDisabled(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.ErrorIs(t, c.Push(context.Background()), ErrPushDisabled)
	assert.NoError(t, c.Close())
}
