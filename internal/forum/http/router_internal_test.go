package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/forum/pkg/httpx"
	"github.com/aussiebroadwan/forum/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRouter_BuildsChainOnce(t *testing.T) {
	tokens, err := jwtx.NewAuthority([]byte("router-chain-secret"))
	require.NoError(t, err)

	r := NewRouter(tokens, "test", nil, slog.New(slog.NewTextHandler(io.Discard, nil)), httpx.DefaultCORS("*"))

	built := 0
	r.middlewares = append(r.middlewares, func(next http.Handler) http.Handler {
		built++
		return next
	})
	r.ApplyRoutes()

	for range 3 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, 1, built)
}
