package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"visitorid/internal/platform/config"
)

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew_RejectsMalformedURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "://nope"})
	assert.ErrorContains(t, err, "parse redis URL")
}
