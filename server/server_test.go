package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/bankcaps/server/config"
	"github.com/sig-0/bankcaps/storage/mock"
)

func TestServer_CustomRoutes(t *testing.T) {
	t.Parallel()

	s, err := New(&mock.Storage{})
	require.NoError(t, err)

	s.Routes(nil) // no-op
	s.Routes(func(router chi.Router) {
		router.Get("/custom", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
	})

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/custom", http.NoBody))

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.ListenAddress = "127.0.0.1:0"

	s, err := New(&mock.Storage{}, WithConfig(cfg))
	require.NoError(t, err)

	var (
		ctx, cancel = context.WithCancel(context.Background())
		errCh       = make(chan error, 1)
	)

	go func() {
		errCh <- s.Serve(ctx)
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
