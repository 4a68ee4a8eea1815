package usecase

import (
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/cursor"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/listing"
	"github.com/x-xyz/claimscore/service/opensea"
	"golang.org/x/xerrors"
)

const (
	SourceOpensea   = "opensea"
	SourceReservoir = "reservoir"
)

var met = metrics.New("listing")

type OpenseaUseCaseCfg struct {
	Client opensea.Client
	// Apikey is only checked for presence, the client sends it
	Apikey   string
	Slug     string
	Links    listing.LinkBuilder
	MaxPages int
}

type openseaImpl struct {
	client   opensea.Client
	apikey   string
	slug     string
	links    listing.LinkBuilder
	maxPages int
}

func NewOpensea(cfg *OpenseaUseCaseCfg) listing.Source {
	return &openseaImpl{
		client:   cfg.Client,
		apikey:   cfg.Apikey,
		slug:     cfg.Slug,
		links:    cfg.Links,
		maxPages: cfg.MaxPages,
	}
}

func (im *openseaImpl) Name() string {
	return SourceOpensea
}

func (im *openseaImpl) FetchAll(c ctx.Ctx) ([]listing.Listing, error) {
	if im.apikey == "" {
		return nil, xerrors.Errorf("opensea listings: %w", domain.ErrMissingCredential)
	}
	defer met.BumpTime("fetch.time", "source", SourceOpensea).End()

	raw := []listing.Listing{}
	err := cursor.Walk(c, func(c ctx.Ctx, next string) (string, error) {
		resp, err := im.client.GetListings(c, im.slug, next)
		if err != nil {
			return "", err
		}
		for _, o := range resp.Listings {
			if l, ok := im.normalize(c, o); ok {
				raw = append(raw, l)
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
		return []listing.Listing{}, xerrors.Errorf("opensea listings: %v: %w", err, domain.ErrSourceDegraded)
	}

	return listing.Dedup(raw), nil
}

func (im *openseaImpl) normalize(c ctx.Ctx, o opensea.Order) (listing.Listing, bool) {
	if len(o.ProtocolData.Parameters.Offer) == 0 {
		c.WithField("orderHash", o.OrderHash).Warn("listing without offer item")
		return listing.Listing{}, false
	}
	price, err := o.Price.Amount().Decimal()
	if err != nil {
		c.WithFields(log.Fields{
			"orderHash": o.OrderHash,
			"err":       err,
		}).Warn("Price.Decimal failed")
		return listing.Listing{}, false
	}
	return im.links.Decorate(listing.Listing{
		TokenId:       domain.TokenId(o.ProtocolData.Parameters.Offer[0].IdentifierOrCriteria),
		PriceInNative: price,
		Marketplace:   SourceOpensea,
	}), true
}
