package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache_Unreachable(t *testing.T) {
	cache, err := NewRedisCache(&RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 200 * time.Millisecond,
		ReadTimeout: 200 * time.Millisecond,
	})

	assert.Error(t, err)
	assert.Nil(t, cache)
}
