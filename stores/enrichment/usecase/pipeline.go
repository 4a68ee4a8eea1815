package usecase

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/goroutine"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/base/ptr"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/balance"
	"github.com/x-xyz/claimscore/domain/enrichment"
	"github.com/x-xyz/claimscore/domain/listing"
	"github.com/x-xyz/claimscore/domain/offer"
	"github.com/x-xyz/claimscore/domain/price"
	"golang.org/x/xerrors"
)

var met = metrics.New("enrichment")

// Variant is one configured combination of sources and scoring formula
type Variant struct {
	Name     string
	Listings listing.Source
	// Offers is nil for variants without collection offers
	Offers  offer.Source
	Scoring enrichment.Scoring
}

type EnrichmentUseCaseCfg struct {
	Variants []Variant
	Balances balance.Reader
	Prices   price.Source
	// Now defaults to time.Now
	Now func() time.Time
}

type impl struct {
	variants map[string]Variant
	balances balance.Reader
	prices   price.Source
	now      func() time.Time
}

func New(cfg *EnrichmentUseCaseCfg) enrichment.UseCase {
	im := &impl{
		variants: map[string]Variant{},
		balances: cfg.Balances,
		prices:   cfg.Prices,
		now:      cfg.Now,
	}
	for _, v := range cfg.Variants {
		im.variants[v.Name] = v
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *impl) Variants() []string {
	res := make([]string, 0, len(im.variants))
	for name := range im.variants {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// gathered holds the output of every branch, each branch writes only its own fields
type gathered struct {
	listings    []listing.Listing
	listingsErr error
	balances    []balance.Result

	offers    []offer.CollectionOffer
	offersErr error

	rates    *price.FiatRates
	ratesErr error
}

// Run fetches every source of variant and enriches the listings. For a known
// variant the result is never nil, a Failed result comes with the error that
// failed it.
func (im *impl) Run(c ctx.Ctx, variant string) (*enrichment.Result, error) {
	v, ok := im.variants[variant]
	if !ok {
		return nil, xerrors.Errorf("unknown variant %q: %w", variant, domain.ErrBadParamInput)
	}

	res := &enrichment.Result{
		RunId:     uuid.New(),
		Variant:   v.Name,
		State:     enrichment.StatePending,
		StartedAt: im.now(),
	}
	c = ctx.WithFields(c, log.Fields{
		"runId":   res.RunId.String(),
		"variant": v.Name,
	})
	defer met.BumpTime("run.time", "variant", v.Name).End()

	g := im.gather(c, v)

	fatal := classify(res, v.Listings.Name(), g.listingsErr)
	if v.Offers != nil {
		if err := classify(res, v.Offers.Name(), g.offersErr); fatal == nil {
			fatal = err
		}
	}
	if g.ratesErr != nil && fatal == nil {
		fatal = g.ratesErr
	}
	if fatal != nil {
		return im.fail(c, res, fatal)
	}

	rows, err := enrichment.Enrich(enrichment.Input{
		Scoring:  v.Scoring,
		Listings: g.listings,
		Balances: g.balances,
		Offers:   g.offers,
		Rates:    g.rates,
	})
	if err != nil {
		c.WithField("err", err).Error("enrichment.Enrich failed")
		return im.fail(c, res, err)
	}

	res.State = enrichment.StateReady
	res.Rows = rows
	res.Summary = enrichment.Summarize(rows)
	res.FinishedAt = ptr.Time(im.now())
	met.BumpSum("run", 1, "variant", v.Name, "state", string(res.State))
	c.WithFields(log.Fields{
		"rows":     len(rows),
		"degraded": res.Degraded,
	}).Info("run ready")
	return res, nil
}

// gather runs listings (then balances), offers and price concurrently and
// waits for all of them
func (im *impl) gather(c ctx.Ctx, v Variant) *gathered {
	g := &gathered{}
	wg := sync.WaitGroup{}

	wg.Add(1)
	goroutine.RecoverableGo(func() {
		g.listings, g.listingsErr = v.Listings.FetchAll(c)
		if g.listingsErr != nil && !errors.Is(g.listingsErr, domain.ErrSourceDegraded) {
			return
		}
		g.balances = im.balances.ReadAll(c, listing.TokenIds(g.listings))
	}, goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
		g.listings, g.balances = []listing.Listing{}, []balance.Result{}
		g.listingsErr = xerrors.Errorf("panic %v: %w", p, domain.ErrSourceDegraded)
	}), goroutine.WithFinally(wg.Done))

	if v.Offers != nil {
		wg.Add(1)
		goroutine.RecoverableGo(func() {
			g.offers, g.offersErr = v.Offers.FetchAll(c)
		}, goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
			g.offers = []offer.CollectionOffer{}
			g.offersErr = xerrors.Errorf("panic %v: %w", p, domain.ErrSourceDegraded)
		}), goroutine.WithFinally(wg.Done))
	}

	wg.Add(1)
	goroutine.RecoverableGo(func() {
		g.rates, g.ratesErr = im.prices.Snapshot(c)
	}, goroutine.WithAfterRecovered(func(p interface{}, _ []byte) {
		g.rates = nil
		g.ratesErr = xerrors.Errorf("panic %v: %w", p, domain.ErrPriceUnavailable)
	}), goroutine.WithFinally(wg.Done))

	wg.Wait()
	return g
}

// classify records a degraded source on res and returns the error when it
// must fail the run
func classify(res *enrichment.Result, source string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingCredential) {
		return err
	}
	res.Degraded = append(res.Degraded, source)
	return nil
}

func (im *impl) fail(c ctx.Ctx, res *enrichment.Result, err error) (*enrichment.Result, error) {
	res.State = enrichment.StateFailed
	res.Reason = err.Error()
	res.FinishedAt = ptr.Time(im.now())
	met.BumpSum("run", 1, "variant", res.Variant, "state", string(res.State))
	c.WithField("err", err).Error("run failed")
	return res, err
}
