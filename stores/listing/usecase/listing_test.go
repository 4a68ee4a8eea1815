package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/ptr"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/listing"
	"github.com/x-xyz/claimscore/service/opensea"
	mOpensea "github.com/x-xyz/claimscore/service/opensea/mocks"
	"github.com/x-xyz/claimscore/service/reservoir"
	mReservoir "github.com/x-xyz/claimscore/service/reservoir/mocks"
)

const contract = domain.Address("0x986aea67c7d6a15036e18678065eb663fc5be883")

type listingSuite struct {
	suite.Suite

	ctx       ctx.Ctx
	opensea   *mOpensea.Client
	reservoir *mReservoir.Client
	links     listing.LinkBuilder
}

func (s *listingSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.opensea = &mOpensea.Client{}
	s.reservoir = &mReservoir.Client{}
	s.links = listing.LinkBuilder{Contract: contract, ImageTemplate: "https://img/{id}.png"}
}

func (s *listingSuite) TearDownTest() {
	s.opensea.AssertExpectations(s.T())
	s.reservoir.AssertExpectations(s.T())
}

func TestListingSuite(t *testing.T) {
	suite.Run(t, new(listingSuite))
}

func osListing(hash, id, wei string) opensea.Order {
	o := opensea.Order{OrderHash: hash}
	o.Price.Current = &opensea.Price{Currency: "ETH", Decimals: 18, Value: wei}
	if id != "" {
		o.ProtocolData.Parameters.Offer = []opensea.Item{{ItemType: 2, IdentifierOrCriteria: id}}
	}
	return o
}

func (s *listingSuite) newOpensea(apikey string) listing.Source {
	return NewOpensea(&OpenseaUseCaseCfg{
		Client: s.opensea,
		Apikey: apikey,
		Slug:   "nft-worlds",
		Links:  s.links,
	})
}

func (s *listingSuite) TestOpenseaFetchAll() {
	s.opensea.On("GetListings", mock.Anything, "nft-worlds", "").Return(&opensea.ListingsResp{
		Listings: []opensea.Order{
			osListing("a", "7", "500000000000000000"),
			osListing("b", "", "1"),
			osListing("c", "3", "1000000000000000000"),
		},
		Next: "p2",
	}, nil).Once()
	s.opensea.On("GetListings", mock.Anything, "nft-worlds", "p2").Return(&opensea.ListingsResp{
		Listings: []opensea.Order{
			osListing("d", "7", "400000000000000000"),
			osListing("e", "9", "bad"),
		},
	}, nil).Once()

	got, err := s.newOpensea("key").FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(domain.TokenId("7"), got[0].TokenId)
	s.Equal("0.4", got[0].PriceInNative.String())
	s.Equal(SourceOpensea, got[0].Marketplace)
	s.Equal("https://opensea.io/assets/ethereum/0x986aea67c7d6a15036e18678065eb663fc5be883/7", got[0].OpenseaLink)
	s.Equal("https://img/7.png", got[0].ImageUrl)
	s.Equal(domain.TokenId("3"), got[1].TokenId)
	s.Equal("1", got[1].PriceInNative.String())
}

func (s *listingSuite) TestOpenseaMissingKey() {
	got, err := s.newOpensea("").FetchAll(s.ctx)
	s.Nil(got)
	s.True(errors.Is(err, domain.ErrMissingCredential))
}

func (s *listingSuite) TestOpenseaDegraded() {
	s.opensea.On("GetListings", mock.Anything, "nft-worlds", "").Return(&opensea.ListingsResp{
		Listings: []opensea.Order{osListing("a", "7", "1")},
		Next:     "p2",
	}, nil).Once()
	s.opensea.On("GetListings", mock.Anything, "nft-worlds", "p2").Return(nil, opensea.ErrStatusCodeNotOk).Once()

	got, err := s.newOpensea("key").FetchAll(s.ctx)
	s.NotNil(got)
	s.Empty(got)
	s.True(errors.Is(err, domain.ErrSourceDegraded))
}

func rsAsk(id, token, native, status, side, source string) reservoir.Order {
	o := reservoir.Order{
		Id:         id,
		Side:       side,
		Status:     status,
		TokenSetId: "token:" + string(contract) + ":" + token,
	}
	o.Source.Name = source
	if native != "" {
		o.Price.Amount.Native = decimalOf(native)
	}
	return o
}

func (s *listingSuite) newReservoir(apikey string) listing.Source {
	return NewReservoir(&ReservoirUseCaseCfg{
		Client:   s.reservoir,
		Apikey:   apikey,
		Contract: contract,
		Links:    s.links,
	})
}

func (s *listingSuite) TestReservoirFetchAll() {
	s.reservoir.On("GetAsks", mock.Anything, contract, "").Return(&reservoir.OrdersResp{
		Orders: []reservoir.Order{
			rsAsk("1", "11", "1.2", reservoir.StatusActive, reservoir.SideSell, "Blur"),
			rsAsk("2", "12", "0.9", "inactive", reservoir.SideSell, "OpenSea"),
			rsAsk("3", "13", "0.9", reservoir.StatusActive, reservoir.SideBuy, "OpenSea"),
			rsAsk("4", "14", "", reservoir.StatusActive, reservoir.SideSell, "OpenSea"),
		},
		Continuation: ptr.String("c2"),
	}, nil).Once()
	s.reservoir.On("GetAsks", mock.Anything, contract, "c2").Return(&reservoir.OrdersResp{
		Orders: []reservoir.Order{
			rsAsk("5", "11", "1.1", reservoir.StatusActive, reservoir.SideSell, ""),
		},
	}, nil).Once()

	got, err := s.newReservoir("key").FetchAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(domain.TokenId("11"), got[0].TokenId)
	s.Equal("1.1", got[0].PriceInNative.String())
	s.Equal(SourceReservoir, got[0].Marketplace)
	s.Equal("https://blur.io/eth/asset/0x986aea67c7d6a15036e18678065eb663fc5be883/11", got[0].BlurLink)
}

func (s *listingSuite) TestReservoirMissingKey() {
	_, err := s.newReservoir("").FetchAll(s.ctx)
	s.True(errors.Is(err, domain.ErrMissingCredential))
}

func (s *listingSuite) TestReservoirDegraded() {
	s.reservoir.On("GetAsks", mock.Anything, contract, "").Return(nil, reservoir.ErrStatusCodeNotOk).Once()

	got, err := s.newReservoir("key").FetchAll(s.ctx)
	s.Equal([]listing.Listing{}, got)
	s.True(errors.Is(err, domain.ErrSourceDegraded))
	s.Equal(SourceReservoir, s.newReservoir("key").Name())
}

func decimalOf(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}
