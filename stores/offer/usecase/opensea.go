package usecase

import (
	"time"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/cursor"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/offer"
	"github.com/x-xyz/claimscore/service/opensea"
	"golang.org/x/xerrors"
)

const (
	SourceOpensea   = "opensea"
	SourceReservoir = "reservoir"
)

var met = metrics.New("offer")

type OpenseaUseCaseCfg struct {
	Client   opensea.Client
	Apikey   string
	Slug     string
	MaxPages int
	// Now defaults to time.Now
	Now func() time.Time
}

type openseaImpl struct {
	client   opensea.Client
	apikey   string
	slug     string
	maxPages int
	now      func() time.Time
}

func NewOpensea(cfg *OpenseaUseCaseCfg) offer.Source {
	im := &openseaImpl{
		client:   cfg.Client,
		apikey:   cfg.Apikey,
		slug:     cfg.Slug,
		maxPages: cfg.MaxPages,
		now:      cfg.Now,
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *openseaImpl) Name() string {
	return SourceOpensea
}

func (im *openseaImpl) FetchAll(c ctx.Ctx) ([]offer.CollectionOffer, error) {
	if im.apikey == "" {
		return nil, xerrors.Errorf("opensea offers: %w", domain.ErrMissingCredential)
	}
	defer met.BumpTime("fetch.time", "source", SourceOpensea).End()

	cands := []offer.Candidate{}
	err := cursor.Walk(c, func(c ctx.Ctx, next string) (string, error) {
		resp, err := im.client.GetCollectionOffers(c, im.slug, next)
		if err != nil {
			return "", err
		}
		for _, o := range resp.Offers {
			if cand, ok := im.normalize(c, o); ok {
				cands = append(cands, cand)
			}
		}
		return resp.Next, nil
	}, cursor.WithMaxPages(im.maxPages))
	if err != nil {
		c.WithFields(log.Fields{
			"slug": im.slug,
			"err":  err,
		}).Error("cursor.Walk failed")
		met.BumpSum("degraded", 1, "source", SourceOpensea)
		return []offer.CollectionOffer{}, xerrors.Errorf("opensea offers: %v: %w", err, domain.ErrSourceDegraded)
	}

	res := offer.Filter(cands, im.now())
	offer.SortByNative(res)
	return res, nil
}

func (im *openseaImpl) normalize(c ctx.Ctx, o opensea.Order) (offer.Candidate, bool) {
	price, err := o.Price.Amount().Decimal()
	if err != nil {
		c.WithFields(log.Fields{
			"orderHash": o.OrderHash,
			"err":       err,
		}).Warn("Price.Decimal failed")
		return offer.Candidate{}, false
	}
	expiresAt, err := o.ProtocolData.Parameters.EndTimeAt()
	if err != nil {
		c.WithFields(log.Fields{
			"orderHash": o.OrderHash,
			"err":       err,
		}).Warn("EndTimeAt failed")
		return offer.Candidate{}, false
	}
	cand := offer.Candidate{
		Offer: offer.CollectionOffer{
			PriceInNative: price,
			SourceName:    SourceOpensea,
			ExpiresAt:     expiresAt,
		},
	}
	if o.Criteria != nil {
		cand.HasTrait = o.Criteria.Trait != nil
		cand.Wildcard = o.Criteria.EncodedTokenIds != nil && *o.Criteria.EncodedTokenIds == opensea.EncodedTokenIdsAll
	}
	return cand, true
}
