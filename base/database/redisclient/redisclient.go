package redisclient

import (
	"math/rand"
	"runtime"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"golang.org/x/xerrors"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
	idleTimeout  = 240 * time.Second
)

// Config of the shared run cache connection
type Config struct {
	// Uri is host:port or a redis:// url
	Uri      string
	Password string
	// PoolMultiplier scales the pool by cpu count, 0 keeps the defaults
	PoolMultiplier float64
	// Retries is the number of extra dial attempts at startup
	Retries int
}

// MustConnect panics when the first connection can not be verified
func MustConnect(c ctx.Ctx, cfg Config) *redis.Pool {
	p, err := Connect(c, cfg)
	if err != nil {
		c.WithFields(log.Fields{"redisURI": cfg.Uri, "err": err}).Panic("redisclient.Connect failed")
	}
	return p
}

// Connect builds a pool and checks one connection with PING
func Connect(c ctx.Ctx, cfg Config) (*redis.Pool, error) {
	p := newPool(cfg)

	var err error
	for attempt := 0; attempt <= cfg.Retries; attempt++ {
		if attempt > 0 {
			// at least one second, jittered
			wait := time.Second + time.Duration(rand.Int63n(int64(time.Second)))
			select {
			case <-c.Done():
				return nil, c.Err()
			case <-time.After(wait):
			}
		}
		if err = ping(p); err == nil {
			c.WithField("redisURI", cfg.Uri).Info("redis connected")
			return p, nil
		}
		c.WithFields(log.Fields{
			"redisURI": cfg.Uri,
			"err":      err,
			"attempt":  attempt,
		}).Warn("ping redis failed")
	}
	p.Close()
	return nil, xerrors.Errorf("failed to connect %s: %w", cfg.Uri, err)
}

func newPool(cfg Config) *redis.Pool {
	maxIdle, maxActive := 200, 1024
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		// allowing 25% idle connection
		maxIdle = int(cpu * cfg.PoolMultiplier / 4)
		maxActive = int(cpu * cfg.PoolMultiplier)
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}

	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: idleTimeout,
		Dial: func() (redis.Conn, error) {
			if strings.HasPrefix(cfg.Uri, "redis://") || strings.HasPrefix(cfg.Uri, "rediss://") {
				return redis.DialURL(cfg.Uri, opts...)
			}
			return redis.Dial("tcp", cfg.Uri, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			// recycled less than 1 sec ago
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

func ping(p *redis.Pool) error {
	conn := p.Get()
	defer conn.Close()
	_, err := conn.Do("PING")
	return err
}
