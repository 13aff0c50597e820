package idx

import (
	"sort"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNewAt_MonotonicWithinMillisecond(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000).UTC()

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = newAt(at).String()
	}

	require.True(t, sort.StringsAreSorted(ids))
	require.NotEqual(t, ids[0], ids[len(ids)-1])

	u, err := ulid.ParseStrict(ids[0])
	require.NoError(t, err)
	require.True(t, ulid.Time(u.Time()).Equal(at))
}
