package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZaguanLabs/polytrans"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 3600, "test:")
	mock.ExpectGet("test:mykey").SetVal("myvalue")

	val, ok := c.Get(context.Background(), "mykey")
	assert.True(t, ok)
	assert.Equal(t, "myvalue", val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 3600, "test:")
	mock.ExpectGet("test:mykey").RedisNil()

	val, ok := c.Get(context.Background(), "mykey")
	assert.False(t, ok)
	assert.Empty(t, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Get_ErrorIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 3600, "test:")
	mock.ExpectGet("test:mykey").SetErr(errors.New("connection refused"))

	_, ok := c.Get(context.Background(), "mykey")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 3600, "test:")
	mock.ExpectSet("test:mykey", "myvalue", 3600*time.Second).SetVal("OK")

	require.NoError(t, c.Set(context.Background(), "mykey", "myvalue"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Set_NoTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "test:")
	mock.ExpectSet("test:mykey", "myvalue", 0).SetVal("OK")

	require.NoError(t, c.Set(context.Background(), "mykey", "myvalue"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Set_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "test:")
	mock.ExpectSet("test:mykey", "myvalue", 0).SetErr(errors.New("READONLY"))

	err := c.Set(context.Background(), "mykey", "myvalue")
	var cacheErr *polytrans.CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_DefaultKeyPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "")
	mock.ExpectGet("polytrans:mykey").SetVal("v")

	_, ok := c.Get(context.Background(), "mykey")
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Entries(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "test:")
	mock.ExpectScan(0, "test:*", 100).SetVal([]string{"test:a", "test:b"}, 0)
	mock.ExpectGet("test:a").SetVal("1")
	mock.ExpectGet("test:b").RedisNil()

	entries, err := c.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1"}, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "")
	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
