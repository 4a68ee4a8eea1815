package usecase

import (
	"fmt"

	"github.com/viney-shih/goroutines"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/base/utils"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/balance"
	"github.com/x-xyz/claimscore/service/chain/contract"
)

const defaultWorkers = 16

var met = metrics.New("balance")

type BalanceUseCaseCfg struct {
	Contract contract.ClaimableContract
	// Workers is the number of concurrent eth_call, defaults to 16
	Workers int
}

type impl struct {
	contract contract.ClaimableContract
	workers  int
}

type indexed struct {
	idx int
	res balance.Result
}

func New(cfg *BalanceUseCaseCfg) balance.Reader {
	im := &impl{
		contract: cfg.Contract,
		workers:  cfg.Workers,
	}
	if im.workers <= 0 {
		im.workers = defaultWorkers
	}
	return im
}

func (im *impl) ReadAll(c ctx.Ctx, ids []domain.TokenId) []balance.Result {
	res := make([]balance.Result, len(ids))
	if len(ids) == 0 {
		return res
	}
	defer met.BumpTime("read.time").End()

	b := goroutines.NewBatch(im.workers, goroutines.WithBatchSize(len(ids)))
	defer b.Close()
	for i := range ids {
		idx := i
		b.Queue(func() (interface{}, error) {
			return indexed{idx: idx, res: im.read(c, ids[idx])}, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		r := ret.Value().(indexed)
		res[r.idx] = r.res
	}

	failures := 0
	for i := range res {
		if !res[i].Ok() {
			failures++
		}
	}
	if failures > 0 {
		met.BumpSum("failure", float64(failures))
		c.WithFields(log.Fields{
			"total":    len(ids),
			"failures": failures,
		}).Warn("claimable reads failed")
	}
	return res
}

// read never panics, a panicking call is a failure of that token only
func (im *impl) read(c ctx.Ctx, id domain.TokenId) (res balance.Result) {
	defer func() {
		if p := recover(); p != nil {
			c.WithFields(log.Fields{
				"tokenId": id,
				"panic":   p,
				"stack":   string(utils.Stack(3)),
			}).Error("contract.Accumulated panicked")
			met.BumpSum("panic", 1)
			res = balance.Failure(id, fmt.Sprint(p))
		}
	}()

	index, err := id.ToBigInt()
	if err != nil {
		return balance.Failure(id, err.Error())
	}
	amount, err := im.contract.Accumulated(c, index)
	if err != nil {
		c.WithFields(log.Fields{
			"tokenId": id,
			"err":     err,
		}).Warn("contract.Accumulated failed")
		return balance.Failure(id, err.Error())
	}
	return balance.Success(id, amount)
}
