package framework

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/godwoken/web3-indexer/pkg/config"
)

func TestHandleHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	handleHealthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	handleHealthz(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	newMetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))
}

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestRun(t *testing.T) {
	t.Run("runner error is returned and server stops", func(t *testing.T) {
		fatal := errors.New("block #3: transport error: refused")
		addr := freeAddr(t)

		err := run(context.Background(), runnerFunc(func(ctx context.Context) error {
			require.Eventually(t, func() bool {
				resp, err := http.Get("http://" + addr + "/healthz")
				if err != nil {
					return false
				}
				resp.Body.Close()
				return resp.StatusCode == http.StatusOK
			}, 5*time.Second, 10*time.Millisecond)

			return fatal
		}), metricsConfig(addr))

		require.ErrorIs(t, err, fatal)
	})

	t.Run("cancellation is a clean stop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := run(ctx, runnerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return errors.Wrap(ctx.Err(), "waiting for block")
		}), metricsConfig(""))

		require.NoError(t, err)
	})

	t.Run("runner finishing stops server", func(t *testing.T) {
		err := run(context.Background(), runnerFunc(func(context.Context) error {
			return nil
		}), metricsConfig(freeAddr(t)))

		require.NoError(t, err)
	})
}

func metricsConfig(addr string) config.Metrics {
	return config.Metrics{Address: addr}
}
