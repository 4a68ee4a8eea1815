package cache

import (
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/domain/keys"
	"github.com/x-xyz/claimscore/service/cache/provider"
	"golang.org/x/sync/singleflight"
)

var met = metrics.New("cache")

type impl struct {
	ttl         time.Duration
	pfx         string
	cache       provider.Provider
	serialize   Serializer
	deserialize Deserializer
	loads       singleflight.Group
}

func New(config ServiceConfig) Service {
	if config.Serialize == nil {
		config.Serialize = json.Marshal
	}

	if config.Deserialize == nil {
		config.Deserialize = json.Unmarshal
	}

	return &impl{
		ttl:         config.Ttl,
		pfx:         config.Pfx,
		cache:       config.Cache,
		serialize:   config.Serialize,
		deserialize: config.Deserialize,
	}
}

// GetByFunc reads key into container, loading and storing it with getter on
// a miss. Concurrent misses of one key share a single getter call, a failed
// getter is not cached.
func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.WithField("err", err).WithField("key", key).Error("Get failed")
		return err
	} else if err == nil {
		met.BumpSum("hit", 1, "pfx", im.pfx)
		return nil
	}
	met.BumpSum("miss", 1, "pfx", im.pfx)

	val, err, shared := im.loads.Do(key, func() (interface{}, error) {
		val, err := getter()
		if err != nil {
			return nil, err
		}
		if err := im.Set(ctx.Detach(c), key, val); err != nil {
			c.WithField("err", err).WithField("key", key).Error("Set failed")
		}
		return val, nil
	})
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("GetByFunc getter failed")
		return err
	}
	if shared {
		met.BumpSum("shared", 1, "pfx", im.pfx)
	}

	reflect.ValueOf(container).Elem().Set(reflect.ValueOf(val).Elem())

	return nil
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	if val, _, err := im.cache.Get(c, key); errors.Is(err, provider.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return err
	} else if err := im.deserialize(val, container); err != nil {
		c.WithField("err", err).WithField("key", key).Error("deserialize failed")
		return err
	}

	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	if val, err := im.serialize(value); err != nil {
		c.WithField("err", err).WithField("key", key).Error("serialize failed")
		return err
	} else if err := im.cache.Set(c, key, val, im.ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}

	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	key = keys.RedisKey(im.pfx, key)

	if err := im.cache.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Del failed")
		return err
	}

	return nil
}
