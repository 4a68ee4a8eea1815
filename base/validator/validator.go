package validator

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/xerrors"

	"github.com/x-xyz/claimscore/domain"
)

// IsValidAddress reports whether address is a 0x prefixed 20 bytes hex string
func IsValidAddress(address string) bool {
	return len(address) == 2+2*common.AddressLength && common.IsHexAddress(address)
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

// Validate wraps field errors with domain.ErrBadParamInput
func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return xerrors.Errorf("%v: %w", err, domain.ErrBadParamInput)
	}
	return nil
}
