package service_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/internal/forum/store/drivers/sqlite"
	"github.com/aussiebroadwan/forum/pkg/cryptox"
	"github.com/aussiebroadwan/forum/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newAccounts(t *testing.T, st *sqlite.Store) *service.AccountService {
	t.Helper()

	tokens, err := jwtx.NewAuthority([]byte("service-test-secret"))
	require.NoError(t, err)

	return &service.AccountService{
		Store:  st,
		Hasher: cryptox.NewHasher(2),
		Tokens: tokens,
		Now:    func() time.Time { return epoch },
	}
}

func ptr[T any](v T) *T { return &v }
