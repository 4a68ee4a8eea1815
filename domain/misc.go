package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

var (
	Big10 = big.NewInt(10)
	// Big1e18 is the base unit of an 18 decimals token
	Big1e18 = new(big.Int).Exp(Big10, big.NewInt(18), nil)
)

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)

func ParseSortDir(s string) (SortDir, error) {
	switch strings.ToLower(s) {
	case "", "desc":
		return SortDirDesc, nil
	case "asc":
		return SortDirAsc, nil
	}
	return 0, xerrors.Errorf("invalid sort dir %q: %w", s, ErrBadParamInput)
}

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId is the decimal string form of an erc721 token id
type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok || id.Sign() < 0 {
		return nil, xerrors.Errorf("invalid id %q: %w", i, ErrInvalidNumberFormat)
	}
	return id, nil
}

// Less orders token ids numerically, unparseable ids sort last by string
func (i TokenId) Less(j TokenId) bool {
	a, errA := i.ToBigInt()
	b, errB := j.ToBigInt()
	switch {
	case errA == nil && errB == nil:
		return a.Cmp(b) < 0
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return i < j
}

var ChainIdWrappedNativeMap map[ChainId]Address = map[ChainId]Address{
	// eth
	1: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
	// goerli
	5: "0xb4fbf271143f4fbf7b91a5ded31805e42b2208d6",
}
