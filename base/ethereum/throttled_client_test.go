package ethereum

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowCaller struct {
	inflight int32
	peak     int32
}

func (c *slowCaller) BlockNumber(ctx context.Context) (uint64, error) {
	return 1, nil
}

func (c *slowCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	n := atomic.AddInt32(&c.inflight, 1)
	for {
		p := atomic.LoadInt32(&c.peak)
		if n <= p || atomic.CompareAndSwapInt32(&c.peak, p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	atomic.AddInt32(&c.inflight, -1)
	return []byte{1}, nil
}

func TestThrottledClientBoundsConcurrency(t *testing.T) {
	req := require.New(t)
	caller := &slowCaller{}
	c := NewThrottledCaller(caller, 2)

	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.CallContract(context.Background(), ethereum.CallMsg{}, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	req.LessOrEqual(atomic.LoadInt32(&caller.peak), int32(2))
}

func TestThrottledClientCancelled(t *testing.T) {
	req := require.New(t)
	c := NewThrottledCaller(&slowCaller{}, 1)
	token, err := c.before(context.Background())
	req.NoError(err)
	defer c.after(token)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.CallContract(ctx, ethereum.CallMsg{}, nil)
	req.ErrorIs(err, context.Canceled)
}
