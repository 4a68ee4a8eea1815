package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/claimscore/domain"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "too short",
			address:    "0x000",
			expIsValid: false,
		},
		{
			desc:       "checksummed collection contract",
			address:    "0xBD4455dA5929D5639EE098ABFaa3241e9ae111Af",
			expIsValid: true,
		},
		{
			desc:       "lower case",
			address:    "0xbd4455da5929d5639ee098abfaa3241e9ae111af",
			expIsValid: true,
		},
		{
			desc:       "missing 0x",
			address:    "bd4455da5929d5639ee098abfaa3241e9ae111af",
			expIsValid: false,
		},
		{
			desc:       "not hex",
			address:    "0xzd4455da5929d5639ee098abfaa3241e9ae111af",
			expIsValid: false,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func (s *ValidatorTestSuite) TestValidate() {
	type params struct {
		SortDir  string `validate:"omitempty,oneof=asc desc"`
		PageSize string `validate:"omitempty,numeric"`
	}
	v := NewCustomValidator(validator.New())

	s.NoError(v.Validate(params{SortDir: "asc", PageSize: "10"}))
	s.NoError(v.Validate(params{}))

	err := v.Validate(params{SortDir: "sideways"})
	s.ErrorIs(err, domain.ErrBadParamInput)
	s.Contains(err.Error(), "SortDir")
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
