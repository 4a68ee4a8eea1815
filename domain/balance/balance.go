package balance

import (
	"math/big"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the claimable balance of one token, in base units
type Result struct {
	TokenId   domain.TokenId `json:"tokenId"`
	Status    Status         `json:"status"`
	RawAmount *big.Int       `json:"rawAmount,omitempty"`
	Reason    string         `json:"reason,omitempty"`
}

func Success(id domain.TokenId, amount *big.Int) Result {
	return Result{TokenId: id, Status: StatusSuccess, RawAmount: amount}
}

func Failure(id domain.TokenId, reason string) Result {
	return Result{TokenId: id, Status: StatusFailure, Reason: reason}
}

func (r Result) Ok() bool {
	return r.Status == StatusSuccess && r.RawAmount != nil
}

// Reader reads the claimable balance of every token id. The result has the
// same length and order as ids, failed reads are reported per entry.
type Reader interface {
	ReadAll(ctx ctx.Ctx, ids []domain.TokenId) []Result
}
