package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_URL", "redis://"+mr.Addr()+"/0")

	client, err := NewRedisClient()
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, mr.Set("doctor:1", "{}"))
	require.NoError(t, mr.Set("doctor:2", "{}"))

	status, err := client.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, true, status["connected"])
	assert.Equal(t, int64(2), status["keys"])
	assert.Contains(t, status, "hits")
	assert.Contains(t, status, "idle_conns")

	assert.NotNil(t, client.Client())
}

func TestNewRedisClientErrors(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		t.Setenv("REDIS_URL", "http://localhost:6379")
		_, err := NewRedisClient()
		assert.ErrorContains(t, err, "failed to parse Redis URL")
	})

	t.Run("server down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		t.Setenv("REDIS_URL", "redis://"+addr+"/0")
		_, err := NewRedisClient()
		assert.ErrorContains(t, err, "failed to connect to Redis")
	})
}

func TestGetStatusAfterServerStops(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_URL", "redis://"+mr.Addr()+"/0")

	client, err := NewRedisClient()
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = client.GetStatus()
	assert.Error(t, err)
}
