package secret_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/secret"
	"storefront/internal/storage"
)

func TestSettingsStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "builder.db"), dir)
	require.NoError(t, err)
	defer db.Close()

	kv := storage.NewSettingsStore(db)
	var s secret.SecretStore = secret.NewSettingsStore(kv)

	v, err := s.Get("storefront_token")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Set("storefront_token", []byte("tok-123")))
	v, err = s.Get("storefront_token")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(v))

	raw, ok, err := kv.Get("secret.storefront_token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, "tok-123", raw, "stored encoded")

	require.NoError(t, s.Delete("storefront_token"))
	v, err = s.Get("storefront_token")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := secret.NewMemoryStore()
	in := []byte("abc")
	require.NoError(t, s.Set("k", in))
	in[0] = 'x'

	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v))
}
