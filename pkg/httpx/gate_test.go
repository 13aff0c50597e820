package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/forum/pkg/cryptox"
	"github.com/aussiebroadwan/forum/pkg/httpx"
	"github.com/aussiebroadwan/forum/pkg/jwtx"
	"github.com/aussiebroadwan/forum/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newAuthority(t *testing.T, opts ...jwtx.Option) *jwtx.Authority {
	t.Helper()
	a, err := jwtx.NewAuthority([]byte("gate-test-secret"), opts...)
	require.NoError(t, err)
	return a
}

// stubNext counts invocations and remembers the request it was given.
type stubNext struct {
	calls int
	req   *http.Request
}

func (s *stubNext) next(r *http.Request) {
	s.calls++
	s.req = r
}

func TestAuthenticate_Stage(t *testing.T) {
	authority := newAuthority(t)
	alice := jwtx.Identity{SubjectID: uuid.New(), DisplayName: "alice"}
	token, err := authority.Issue(alice)
	require.NoError(t, err)

	stage := httpx.Authenticate(authority)

	t.Run("missing header", func(t *testing.T) {
		var s stubNext
		err := stage(httptest.NewRequest(http.MethodGet, "/", nil), s.next)
		require.ErrorIs(t, err, httpx.ErrMissingCredentials)
		require.Zero(t, s.calls)
	})

	t.Run("basic scheme is malformed", func(t *testing.T) {
		var s stubNext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic xyz")

		err := stage(req, s.next)
		require.ErrorIs(t, err, httpx.ErrMalformedCredentials)
		require.Zero(t, s.calls)
	})

	t.Run("lowercase scheme is malformed", func(t *testing.T) {
		var s stubNext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer "+token)

		err := stage(req, s.next)
		require.ErrorIs(t, err, httpx.ErrMalformedCredentials)
		require.Zero(t, s.calls)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		var s stubNext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")

		err := stage(req, s.next)
		require.ErrorIs(t, err, httpx.ErrInvalidCredentials)
		require.Zero(t, s.calls)
	})

	t.Run("valid token attaches identity and calls next once", func(t *testing.T) {
		var s stubNext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		err := stage(req, s.next)
		require.NoError(t, err)
		require.Equal(t, 1, s.calls)

		got, ok := httpx.IdentityFromContext(s.req.Context())
		require.True(t, ok)
		require.Equal(t, alice, got)
	})
}

func TestAuthenticate_CollapsesReasons(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	authority := newAuthority(t, jwtx.WithClock(func() time.Time { return clock }))
	other, err := jwtx.NewAuthority([]byte("someone-else"))
	require.NoError(t, err)

	id := jwtx.Identity{SubjectID: uuid.New(), DisplayName: "bob"}
	expired, err := authority.Issue(id)
	require.NoError(t, err)
	forged, err := other.Issue(id)
	require.NoError(t, err)

	clock = clock.Add(48 * time.Hour)

	ahead := newAuthority(t, jwtx.WithClock(func() time.Time { return clock.Add(time.Hour) }))
	future, err := ahead.Issue(id)
	require.NoError(t, err)

	h := httpx.RequireAuth(authority)(okHandler)

	for name, token := range map[string]string{
		"expired":          expired,
		"forged":           forged,
		"malformed":        "abc",
		"issued in future": future,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.JSONEq(t, `{"error":"unauthorized","error_description":"Invalid token"}`, rec.Body.String())
			require.Equal(t, `Bearer error="invalid_token"`, rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestAuthenticate_CountsRejections(t *testing.T) {
	counter := metrics.AuthRejections.WithLabelValues("authenticate", "missing")
	before := testutil.ToFloat64(counter)

	h := httpx.RequireAuth(newAuthority(t))(okHandler)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestAuthorize_Stage(t *testing.T) {
	stage := httpx.Authorize()

	t.Run("non-admin rejected", func(t *testing.T) {
		var s stubNext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(httpx.WithIdentity(req.Context(), jwtx.Identity{SubjectID: uuid.New()}))

		err := stage(req, s.next)
		require.ErrorIs(t, err, httpx.ErrInsufficientPrivilege)
		require.Zero(t, s.calls)
	})

	t.Run("admin proceeds", func(t *testing.T) {
		var s stubNext
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(httpx.WithIdentity(req.Context(), jwtx.Identity{SubjectID: uuid.New(), IsAdmin: true}))

		err := stage(req, s.next)
		require.NoError(t, err)
		require.Equal(t, 1, s.calls)
	})
}

func TestGate_ShortCircuits(t *testing.T) {
	var order []string
	record := func(name string, fail error) httpx.Stage {
		return func(r *http.Request, next func(*http.Request)) error {
			order = append(order, name)
			if fail != nil {
				return fail
			}
			next(r)
			return nil
		}
	}

	handlerCalls := 0
	h := httpx.Gate(
		record("first", nil),
		record("second", httpx.ErrInsufficientPrivilege),
		record("third", nil),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { handlerCalls++ }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second"}, order)
	require.Zero(t, handlerCalls)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate_UnknownErrorIsServerError(t *testing.T) {
	h := httpx.Gate(httpx.Authorize())(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"server_error","error_description":"Internal server error"}`, rec.Body.String())
}

func TestGate_EndToEnd(t *testing.T) {
	// Password is hashed for storage and checked on login.
	stored, err := cryptox.HashPassword("secret123")
	require.NoError(t, err)
	ok, err := cryptox.VerifyPassword("secret123", stored)
	require.NoError(t, err)
	require.True(t, ok)

	// Login mints a token for a non-admin.
	authority := newAuthority(t)
	u := uuid.New()
	token, err := authority.Issue(jwtx.Identity{SubjectID: u, DisplayName: "alice"})
	require.NoError(t, err)

	claims, err := authority.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.String(), claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.False(t, claims.Admin)
	require.Equal(t, claims.IssuedAt.Unix()+86400, claims.ExpiresAt.Unix())

	var seen []jwtx.Identity
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := httpx.IdentityFromContext(r.Context())
		seen = append(seen, id)
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	})

	send := func(h http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/categories/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	// Authenticate alone lets alice through with her identity attached.
	rec := send(httpx.RequireAuth(authority)(handler))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, seen, 1)
	require.Equal(t, jwtx.Identity{SubjectID: u, DisplayName: "alice"}, seen[0])

	// Adding Authorize turns her away.
	rec = send(httpx.RequireAdmin(authority)(handler))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Len(t, seen, 1)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "forbidden", body["error"])
	require.Equal(t, "Admin privileges required", body["error_description"])
}
