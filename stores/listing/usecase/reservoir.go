package usecase

import (
	"strings"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/cursor"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/listing"
	"github.com/x-xyz/claimscore/service/reservoir"
	"golang.org/x/xerrors"
)

type ReservoirUseCaseCfg struct {
	Client   reservoir.Client
	Apikey   string
	Contract domain.Address
	Links    listing.LinkBuilder
	MaxPages int
}

type reservoirImpl struct {
	client   reservoir.Client
	apikey   string
	contract domain.Address
	links    listing.LinkBuilder
	maxPages int
}

func NewReservoir(cfg *ReservoirUseCaseCfg) listing.Source {
	return &reservoirImpl{
		client:   cfg.Client,
		apikey:   cfg.Apikey,
		contract: cfg.Contract,
		links:    cfg.Links,
		maxPages: cfg.MaxPages,
	}
}

func (im *reservoirImpl) Name() string {
	return SourceReservoir
}

func (im *reservoirImpl) FetchAll(c ctx.Ctx) ([]listing.Listing, error) {
	if im.apikey == "" {
		return nil, xerrors.Errorf("reservoir listings: %w", domain.ErrMissingCredential)
	}
	defer met.BumpTime("fetch.time", "source", SourceReservoir).End()

	raw := []listing.Listing{}
	err := cursor.Walk(c, func(c ctx.Ctx, continuation string) (string, error) {
		resp, err := im.client.GetAsks(c, im.contract, continuation)
		if err != nil {
			return "", err
		}
		for _, o := range resp.Orders {
			if l, ok := im.normalize(c, o); ok {
				raw = append(raw, l)
			}
		}
		return resp.Next(), nil
	}, cursor.WithMaxPages(im.maxPages))
	if err != nil {
		c.WithFields(log.Fields{
			"contract": im.contract,
			"err":      err,
		}).Error("cursor.Walk failed")
		met.BumpSum("degraded", 1, "source", SourceReservoir)
		return []listing.Listing{}, xerrors.Errorf("reservoir listings: %v: %w", err, domain.ErrSourceDegraded)
	}

	return listing.Dedup(raw), nil
}

func (im *reservoirImpl) normalize(c ctx.Ctx, o reservoir.Order) (listing.Listing, bool) {
	if o.Side != reservoir.SideSell || o.Status != reservoir.StatusActive {
		return listing.Listing{}, false
	}
	id, ok := o.TokenId()
	if !ok {
		c.WithField("orderId", o.Id).Warn("ask without token id")
		return listing.Listing{}, false
	}
	if !o.Price.Amount.Native.Valid {
		c.WithField("orderId", o.Id).Warn("ask without native price")
		return listing.Listing{}, false
	}
	marketplace := strings.ToLower(o.Source.Name)
	if marketplace == "" {
		marketplace = SourceReservoir
	}
	return im.links.Decorate(listing.Listing{
		TokenId:       id,
		PriceInNative: o.Price.Amount.Native.Decimal,
		Marketplace:   marketplace,
	}), true
}
