package compound

import (
	"errors"
	"time"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
}

// NewCompound stacks providers, fastest first. A hit returns immediately and
// back fills the layers in front of it with the remaining ttl.
func NewCompound(layers ...provider.Provider) provider.Provider {
	return &impl{layers}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	var (
		val    []byte
		ttl    time.Duration
		err    error
		hitIdx = -1
	)

	for idx, lyr := range im.layers {
		if val, ttl, err = lyr.Get(c, key); errors.Is(err, provider.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, time.Duration(0), err
		} else {
			hitIdx = idx
			break
		}
	}

	if hitIdx == -1 {
		return nil, time.Duration(0), provider.ErrNotFound
	}

	// fill layers which missing cache, a failed fill still serves the hit
	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, val, ttl); err != nil {
			c.WithFields(log.Fields{
				"key":   key,
				"layer": idx,
				"err":   err,
			}).Warn("back fill failed")
		}
	}

	return val, ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
