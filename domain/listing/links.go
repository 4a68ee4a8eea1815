package listing

import (
	"fmt"
	"strings"

	"github.com/x-xyz/claimscore/domain"
)

const (
	openseaAssetUrl = "https://opensea.io/assets/ethereum/%s/%s"
	blurAssetUrl    = "https://blur.io/eth/asset/%s/%s"
)

// LinkBuilder derives marketplace deep links and the image url of a token
type LinkBuilder struct {
	Contract domain.Address
	// ImageTemplate contains one {id} placeholder
	ImageTemplate string
}

func (b LinkBuilder) Decorate(l Listing) Listing {
	c := b.Contract.ToLowerStr()
	l.OpenseaLink = fmt.Sprintf(openseaAssetUrl, c, l.TokenId)
	l.BlurLink = fmt.Sprintf(blurAssetUrl, c, l.TokenId)
	if b.ImageTemplate != "" {
		l.ImageUrl = strings.ReplaceAll(b.ImageTemplate, "{id}", l.TokenId.String())
	}
	return l
}
