package primitive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strconv"
	"time"

	"github.com/coocood/freecache"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/service/cache/provider"
)

const (
	// freecache never goes below 512KB
	minCacheSize = 512 * 1024
	// freecache entry header
	entryHeader = 24
	// "#" and the chunk index
	chunkSuffix = 11
)

var errChunkEvicted = errors.New("chunk evicted while writing")

// chunkMarker starts the value of a key whose payload is split in chunks,
// it is followed by the chunk count as uint32
var chunkMarker = []byte("\x00chunks:")

type impl struct {
	name     string
	cache    *freecache.Cache
	maxEntry int
}

// NewPrimitive creates an in-process cache of size MB. freecache caps one
// entry at 1/1024 of the cache size, larger values are split in chunks.
func NewPrimitive(name string, size int) provider.Provider {
	sz := size * 1024 * 1024
	if sz < minCacheSize {
		sz = minCacheSize
	}
	return &impl{
		name:     name,
		cache:    freecache.NewCache(sz),
		maxEntry: sz / 1024,
	}
}

func chunkKey(key string, i int) []byte {
	return []byte(key + "#" + strconv.Itoa(i))
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, ttl, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("cache.Get failed")
		return nil, time.Duration(0), err
	}

	if n, ok := chunkCount(val); ok {
		joined := []byte{}
		for i := 0; i < n; i++ {
			part, err := im.cache.Get(chunkKey(key, i))
			if err == freecache.ErrNotFound {
				// a chunk was evicted before its header
				return nil, time.Duration(0), provider.ErrNotFound
			} else if err != nil {
				c.WithFields(log.Fields{"err": err, "key": key, "chunk": i, "cache": im.name}).Error("cache.Get failed")
				return nil, time.Duration(0), err
			}
			joined = append(joined, part...)
		}
		val = joined
	}

	if ttl == 0 {
		return val, time.Duration(0), nil
	}
	// freecache reports the absolute expiry in unix seconds
	return val, time.Until(time.Unix(int64(ttl), 0)), nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	expire := int(ttl.Seconds())
	if entryHeader+len(key)+len(value) <= im.maxEntry && !bytes.HasPrefix(value, chunkMarker) {
		if err := im.cache.Set([]byte(key), value, expire); err != nil {
			c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("cache.Set failed")
			return err
		}
		return nil
	}

	chunkSize := im.maxEntry - entryHeader - len(key) - chunkSuffix
	if chunkSize <= 0 {
		c.WithFields(log.Fields{"key": key, "cache": im.name}).Error("key too large to chunk")
		return freecache.ErrLargeEntry
	}

	n := 0
	for start := 0; start < len(value); start += chunkSize {
		end := start + chunkSize
		if end > len(value) {
			end = len(value)
		}
		if err := im.cache.Set(chunkKey(key, n), value[start:end], expire); err != nil {
			c.WithFields(log.Fields{"err": err, "key": key, "chunk": n, "cache": im.name}).Error("cache.Set failed")
			return err
		}
		n++
	}

	// the header goes last so readers never see a partial value
	header := make([]byte, len(chunkMarker)+4)
	copy(header, chunkMarker)
	binary.BigEndian.PutUint32(header[len(chunkMarker):], uint32(n))
	if err := im.cache.Set([]byte(key), header, expire); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key, "cache": im.name}).Error("cache.Set failed")
		return err
	}
	// chunks of one value may share a segment and evict each other
	for i := 0; i < n; i++ {
		if _, err := im.cache.Get(chunkKey(key, i)); err != nil {
			c.WithFields(log.Fields{"key": key, "chunk": i, "chunks": n, "cache": im.name}).Error("chunk evicted")
			im.Del(c, key)
			return errChunkEvicted
		}
	}
	c.WithFields(log.Fields{"key": key, "chunks": n, "size": len(value), "cache": im.name}).Debug("value chunked")
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	if val, err := im.cache.Get([]byte(key)); err == nil {
		if n, ok := chunkCount(val); ok {
			for i := 0; i < n; i++ {
				im.cache.Del(chunkKey(key, i))
			}
		}
	}
	im.cache.Del([]byte(key))
	return nil
}

func chunkCount(val []byte) (int, bool) {
	if len(val) != len(chunkMarker)+4 || !bytes.HasPrefix(val, chunkMarker) {
		return 0, false
	}
	return int(binary.BigEndian.Uint32(val[len(chunkMarker):])), true
}
