package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/dashboard"
	"github.com/x-xyz/claimscore/domain/enrichment"
	mEnrichment "github.com/x-xyz/claimscore/domain/enrichment/mocks"
	"github.com/x-xyz/claimscore/domain/keys"
	"github.com/x-xyz/claimscore/domain/listing"
	"github.com/x-xyz/claimscore/service/cache"
	"github.com/x-xyz/claimscore/service/cache/provider"
	"github.com/x-xyz/claimscore/service/cache/provider/primitive"
)

var startedAt = time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)

type dashboardSuite struct {
	suite.Suite

	ctx        ctx.Ctx
	enrichment *mEnrichment.UseCase
	im         dashboard.UseCase
}

// cappedProvider refuses values larger than max
type cappedProvider struct {
	provider.Provider
	max int
}

func (p cappedProvider) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if len(value) > p.max {
		return errors.New("entry too large")
	}
	return p.Provider.Set(c, key, value, ttl)
}

func realisticRows(n int) []enrichment.Row {
	const contract = "0xbd4455da5929d5639ee098abfaa3241e9ae111af"
	rows := make([]enrichment.Row, n)
	for i := range rows {
		id := fmt.Sprint(1000 + i)
		offer := decimal.RequireFromString("812.40")
		rows[i] = enrichment.Row{
			Listing: listing.Listing{
				TokenId:       domain.TokenId(id),
				PriceInNative: decimal.RequireFromString("0.4875"),
				Marketplace:   "opensea",
				OpenseaLink:   "https://opensea.io/assets/ethereum/" + contract + "/" + id,
				BlurLink:      "https://blur.io/eth/asset/" + contract + "/" + id,
				ImageUrl:      "https://img.nftworlds.com/" + id + ".png",
			},
			ClaimableQuantity:               decimal.NewFromInt(int64(12000 + i)),
			ClaimableFiatValue:              decimal.RequireFromString("243.12"),
			ListingFiatValue:                decimal.RequireFromString("780.00"),
			Score:                           decimal.RequireFromString("135.33"),
			HighestCollectionOfferFiatValue: &offer,
		}
	}
	return rows
}

func (s *dashboardSuite) newDashboard(p provider.Provider) dashboard.UseCase {
	return New(&DashboardUseCaseCfg{
		Enrichment: s.enrichment,
		Runs: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxDashboardRun,
			Cache: p,
		}),
		DefaultVariant: "opensea",
		Workers:        2,
		Now:            func() time.Time { return startedAt },
	})
}

func (s *dashboardSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.enrichment = &mEnrichment.UseCase{}
	s.enrichment.On("Variants").Return([]string{"opensea", "reservoir"}).Maybe()
	s.im = s.newDashboard(primitive.NewPrimitive("dashboard_test", 1))
}

func (s *dashboardSuite) TearDownTest() {
	s.enrichment.AssertExpectations(s.T())
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(dashboardSuite))
}

func (s *dashboardSuite) TestRunDefaultVariant() {
	res := &enrichment.Result{RunId: uuid.New(), Variant: "opensea", State: enrichment.StateReady}
	s.enrichment.On("Run", mock.Anything, "opensea").Return(res, nil).Once()

	got, err := s.im.Run(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(res, got)
	s.Equal("opensea", s.im.DefaultVariant())
	s.Equal([]string{"opensea", "reservoir"}, s.im.Variants())
}

func (s *dashboardSuite) TestStartUnknownVariant() {
	_, err := s.im.Start(s.ctx, "blur")
	s.True(errors.Is(err, domain.ErrBadParamInput))
}

func (s *dashboardSuite) TestStartAndPoll() {
	release := make(chan struct{})
	s.enrichment.On("Run", mock.Anything, "reservoir").Run(func(mock.Arguments) {
		<-release
	}).Return(&enrichment.Result{
		RunId:   uuid.New(),
		Variant: "reservoir",
		State:   enrichment.StateReady,
		Rows:    []enrichment.Row{},
	}, nil).Once()

	pending, err := s.im.Start(s.ctx, "reservoir")
	s.Require().NoError(err)
	s.Equal(enrichment.StatePending, pending.State)

	got, err := s.im.Get(s.ctx, pending.RunId)
	s.Require().NoError(err)
	s.Equal(enrichment.StatePending, got.State)

	close(release)
	s.Eventually(func() bool {
		got, err := s.im.Get(s.ctx, pending.RunId)
		return err == nil && got.State == enrichment.StateReady
	}, 3*time.Second, 10*time.Millisecond)

	got, err = s.im.Get(s.ctx, pending.RunId)
	s.Require().NoError(err)
	s.Equal(pending.RunId, got.RunId)
	s.Equal(startedAt.Unix(), got.StartedAt.Unix())
	s.NotNil(got.FinishedAt)
}

func (s *dashboardSuite) TestStartFailedRun() {
	s.enrichment.On("Run", mock.Anything, "opensea").Return(&enrichment.Result{
		Variant: "opensea",
		State:   enrichment.StateFailed,
		Reason:  "price unavailable",
	}, domain.ErrPriceUnavailable).Once()

	pending, err := s.im.Start(s.ctx, "")
	s.Require().NoError(err)

	s.Eventually(func() bool {
		got, err := s.im.Get(s.ctx, pending.RunId)
		return err == nil && got.State == enrichment.StateFailed
	}, 3*time.Second, 10*time.Millisecond)
}

func (s *dashboardSuite) TestGetUnknownRun() {
	_, err := s.im.Get(s.ctx, uuid.New())
	s.True(errors.Is(err, domain.ErrNotFound))
}

func (s *dashboardSuite) TestStartAndPollLargeRun() {
	// same sizing as the default dashboard.cacheSizeMB
	im := s.newDashboard(primitive.NewPrimitive("dashboard_runs", 64))
	rows := realisticRows(500)
	s.enrichment.On("Run", mock.Anything, "opensea").Return(&enrichment.Result{
		Variant: "opensea",
		State:   enrichment.StateReady,
		Rows:    rows,
		Summary: enrichment.Summarize(rows),
	}, nil).Once()

	pending, err := im.Start(s.ctx, "opensea")
	s.Require().NoError(err)

	s.Eventually(func() bool {
		got, err := im.Get(s.ctx, pending.RunId)
		return err == nil && got.State == enrichment.StateReady
	}, 3*time.Second, 10*time.Millisecond)

	got, err := im.Get(s.ctx, pending.RunId)
	s.Require().NoError(err)
	s.Require().Len(got.Rows, 500)
	s.Equal(rows[499].OpenseaLink, got.Rows[499].OpenseaLink)
	s.True(rows[499].Score.Equal(got.Rows[499].Score))
	s.Equal(500, got.Summary.Count)
}

func (s *dashboardSuite) TestStoreFailureSurfacesFailed() {
	im := s.newDashboard(cappedProvider{primitive.NewPrimitive("dashboard_capped", 1), 4 * 1024})
	s.enrichment.On("Run", mock.Anything, "opensea").Return(&enrichment.Result{
		Variant:  "opensea",
		State:    enrichment.StateReady,
		Rows:     realisticRows(300),
		Degraded: []string{"opensea-offers"},
	}, nil).Once()

	pending, err := im.Start(s.ctx, "opensea")
	s.Require().NoError(err)

	s.Eventually(func() bool {
		got, err := im.Get(s.ctx, pending.RunId)
		return err == nil && got.State == enrichment.StateFailed
	}, 3*time.Second, 10*time.Millisecond)

	got, err := im.Get(s.ctx, pending.RunId)
	s.Require().NoError(err)
	s.Empty(got.Rows)
	s.Contains(got.Reason, "failed to store run result")
	s.Equal([]string{"opensea-offers"}, got.Degraded)
	s.NotNil(got.FinishedAt)
}
