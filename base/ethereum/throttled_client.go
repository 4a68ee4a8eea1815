package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/x-xyz/claimscore/base/log"
)

// Caller is the read-only subset of ethclient.Client used for view calls
type Caller interface {
	BlockNumber(ctx context.Context) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error)
}

// ThrottledClient bounds the number of in-flight rpc requests.
type ThrottledClient struct {
	caller Caller
	tokens chan int
}

func NewTrottledClient(client *ethclient.Client, n int) *ThrottledClient {
	return NewThrottledCaller(client, n)
}

func NewThrottledCaller(caller Caller, n int) *ThrottledClient {
	if n <= 0 {
		n = 1
	}
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &ThrottledClient{
		caller: caller,
		tokens: tokens,
	}
}

func (c *ThrottledClient) BlockNumber(ctx context.Context) (uint64, error) {
	token, err := c.before(ctx)
	if err != nil {
		return 0, err
	}
	defer c.after(token)
	return c.caller.BlockNumber(ctx)
}

func (c *ThrottledClient) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	token, err := c.before(ctx)
	if err != nil {
		return nil, err
	}
	defer c.after(token)
	return c.caller.CallContract(ctx, msg, number)
}

func (c *ThrottledClient) before(ctx context.Context) (int, error) {
	now := time.Now()
	select {
	case <-ctx.Done():
		log.Log().WithField("wait", time.Since(now)).Debug("#throttle ctx done")
		return 0, ctx.Err()
	case token := <-c.tokens:
		log.Log().WithFields(log.Fields{
			"token": token,
			"idle":  len(c.tokens),
			"wait":  time.Since(now),
		}).Debug("#throttle acquired")
		return token, nil
	}
}

func (c *ThrottledClient) after(token int) {
	if token != 0 {
		c.tokens <- token
	}
}
