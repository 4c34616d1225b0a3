package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/config"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Cmdable().Set(context.Background(), "risk:artifacts:model.json", "{}", 0).Err())
	assert.True(t, mr.Exists("risk:artifacts:model.json"))
}

func TestConnect_PingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), config.RedisConfig{Address: addr})
	assert.ErrorContains(t, err, addr)
}

func TestNewRedis_EmptyAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)

	_, err = Connect(context.Background(), config.RedisConfig{})
	assert.Error(t, err)
}
