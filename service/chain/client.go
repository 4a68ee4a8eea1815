package chain

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
	bEthereum "github.com/x-xyz/claimscore/base/ethereum"
	"github.com/x-xyz/claimscore/base/log"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

const defaultMaxConcurrency = 16

type ClientCfg struct {
	RpcUrls map[int32]string
	// MaxConcurrency bounds in-flight calls per chain
	MaxConcurrency int
}

type Client interface {
	Call(bCtx.Ctx, int32, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
	BlockNumber(ctx bCtx.Ctx, chainId int32) (uint64, error)
}

type clientImpl struct {
	clients map[int32]*bEthereum.ThrottledClient
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var (
		anyerr error
	)
	callers := make(map[int32]bEthereum.Caller)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		callers[chainId] = client
	}
	return NewClientWithCallers(callers, cfg.MaxConcurrency), anyerr
}

// NewClientWithCallers wraps already connected callers
func NewClientWithCallers(callers map[int32]bEthereum.Caller, maxConcurrency int) Client {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	clients := make(map[int32]*bEthereum.ThrottledClient)
	for chainId, caller := range callers {
		clients[chainId] = bEthereum.NewThrottledCaller(caller, maxConcurrency)
	}
	return &clientImpl{
		clients: clients,
	}
}

func (c *clientImpl) BlockNumber(ctx bCtx.Ctx, chainId int32) (uint64, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return 0, ErrUnsupportedChain
	}
	n, err := client.BlockNumber(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"chainId": chainId,
			"err":     err,
		}).Error("client.BlockNumber failed")
		return 0, err
	}
	return n, nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Warn("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}
