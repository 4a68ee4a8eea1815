package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/domain/keys"
	"github.com/x-xyz/claimscore/service/cache/provider"
)

var met = metrics.New("redis")

type impl struct {
	name string
	pool *redis.Pool
}

// NewRedis creates a provider backed by a shared redis
func NewRedis(name string, pool *redis.Pool) provider.Provider {
	return &impl{name, pool}
}

func (im *impl) do(c ctx.Ctx, key string, cmd string, args ...interface{}) (interface{}, error) {
	defer met.BumpTime("time", "func", cmd, "cluster", im.name, "prefix", keys.GetPrefix(key)).End()

	conn, err := im.pool.GetContext(c)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "cluster": im.name}).Error("pool.GetContext failed")
		return nil, err
	}
	defer conn.Close()

	return conn.Do(cmd, append([]interface{}{key}, args...)...)
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, err := redis.Bytes(im.do(c, key, "GET"))
	if err == redis.ErrNil {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Get failed")
		return nil, time.Duration(0), err
	}

	ms, err := redis.Int64(im.do(c, key, "PTTL"))
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.PTTL failed")
		return nil, time.Duration(0), err
	}
	if ms < 0 {
		// -1 no expiry, -2 expired in between
		ms = 0
	}
	return val, time.Duration(ms) * time.Millisecond, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	args := []interface{}{value}
	if ttl > 0 {
		args = append(args, "PX", ttl.Milliseconds())
	}
	if _, err := redis.String(im.do(c, key, "SET", args...)); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if _, err := im.do(c, key, "DEL"); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Del failed")
		return err
	}
	return nil
}
