package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store {
			s, err := Open(filepath.Join(t.TempDir(), "nested", "settings.db"))
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_DefaultsToEnabled(t *testing.T) {
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			enabled, err := s.Enabled(context.Background(), "USER_001_SANDRA")
			require.NoError(t, err)
			assert.True(t, enabled)
		})
	}
}

func TestStore_SetEnabled(t *testing.T) {
	ctx := context.Background()
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			require.NoError(t, s.SetEnabled(ctx, "USER_002_JAMES", false))
			enabled, err := s.Enabled(ctx, "USER_002_JAMES")
			require.NoError(t, err)
			assert.False(t, enabled)

			other, err := s.Enabled(ctx, "USER_003_PRIYA")
			require.NoError(t, err)
			assert.True(t, other, "settings are per user")

			require.NoError(t, s.SetEnabled(ctx, "USER_002_JAMES", true))
			enabled, err = s.Enabled(ctx, "USER_002_JAMES")
			require.NoError(t, err)
			assert.True(t, enabled)
		})
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetEnabled(ctx, "USER_005_EMMA", false))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	enabled, err := reopened.Enabled(ctx, "USER_005_EMMA")
	require.NoError(t, err)
	assert.False(t, enabled)
}
