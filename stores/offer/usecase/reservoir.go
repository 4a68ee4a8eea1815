package usecase

import (
	"strings"
	"time"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/cursor"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/offer"
	"github.com/x-xyz/claimscore/service/reservoir"
	"golang.org/x/xerrors"
)

type ReservoirUseCaseCfg struct {
	Client reservoir.Client
	Apikey string
	// Collection is the reservoir collection id, the contract address for single contract collections
	Collection string
	MaxPages   int
	Now        func() time.Time
}

type reservoirImpl struct {
	client     reservoir.Client
	apikey     string
	collection string
	maxPages   int
	now        func() time.Time
}

func NewReservoir(cfg *ReservoirUseCaseCfg) offer.Source {
	im := &reservoirImpl{
		client:     cfg.Client,
		apikey:     cfg.Apikey,
		collection: cfg.Collection,
		maxPages:   cfg.MaxPages,
		now:        cfg.Now,
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *reservoirImpl) Name() string {
	return SourceReservoir
}

func (im *reservoirImpl) FetchAll(c ctx.Ctx) ([]offer.CollectionOffer, error) {
	if im.apikey == "" {
		return nil, xerrors.Errorf("reservoir offers: %w", domain.ErrMissingCredential)
	}
	defer met.BumpTime("fetch.time", "source", SourceReservoir).End()

	cands := []offer.Candidate{}
	err := cursor.Walk(c, func(c ctx.Ctx, continuation string) (string, error) {
		resp, err := im.client.GetBids(c, im.collection, continuation)
		if err != nil {
			return "", err
		}
		for _, o := range resp.Orders {
			if cand, ok := im.normalize(c, o); ok {
				cands = append(cands, cand)
			}
		}
		return resp.Next(), nil
	}, cursor.WithMaxPages(im.maxPages))
	if err != nil {
		c.WithFields(log.Fields{
			"collection": im.collection,
			"err":        err,
		}).Error("cursor.Walk failed")
		met.BumpSum("degraded", 1, "source", SourceReservoir)
		return []offer.CollectionOffer{}, xerrors.Errorf("reservoir offers: %v: %w", err, domain.ErrSourceDegraded)
	}

	res := offer.Filter(cands, im.now())
	offer.SortByFiat(res)
	return res, nil
}

func (im *reservoirImpl) normalize(c ctx.Ctx, o reservoir.Order) (offer.Candidate, bool) {
	if o.Side != reservoir.SideBuy || o.Status != reservoir.StatusActive {
		return offer.Candidate{}, false
	}
	if !o.Price.Amount.Native.Valid {
		c.WithField("orderId", o.Id).Warn("bid without native price")
		return offer.Candidate{}, false
	}
	name := strings.ToLower(o.Source.Name)
	if name == "" {
		name = SourceReservoir
	}
	return offer.Candidate{
		Offer: offer.CollectionOffer{
			PriceInNative: o.Price.Amount.Native.Decimal,
			PriceInFiat:   o.Price.Amount.Usd,
			SourceName:    name,
			ExpiresAt:     o.ExpiresAt(),
		},
		HasTrait: o.HasTrait(),
		Wildcard: o.IsCollectionWide(),
	}, true
}
