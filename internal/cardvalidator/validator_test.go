package cardvalidator_test

import (
	"payments/internal/cardvalidator"
	"payments/internal/config"
	"payments/pkg/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// june2025 is before the 12/25 expiry used by most fixtures.
var june2025 = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC) //nolint: gochecknoglobals

func newValidator(now time.Time) *cardvalidator.Service {
	opts := cardvalidator.DefaultOptions()
	opts.Now = func() time.Time { return now }

	return cardvalidator.New(opts)
}

func validVisa() domain.Card {
	return domain.Card{
		Owner:      "John Doe",
		Number:     "4111111111111111",
		ExpiryDate: "12/25",
		CVC:        "123",
	}
}

func TestValidate_ValidCards(t *testing.T) {
	tests := []struct {
		name    string
		card    domain.Card
		network domain.Network
	}{
		{
			name:    "visa",
			card:    validVisa(),
			network: domain.NetworkVisa,
		},
		{
			name:    "mastercard",
			card:    domain.Card{Owner: "John Doe", Number: "5111111111111111", ExpiryDate: "12/25", CVC: "123"},
			network: domain.NetworkMasterCard,
		},
		{
			name:    "american express",
			card:    domain.Card{Owner: "Jane Roe", Number: "371449635398431", ExpiryDate: "01/27", CVC: "1234"},
			network: domain.NetworkAmericanExpress,
		},
		{
			name:    "expires this month",
			card:    domain.Card{Owner: "John Doe", Number: "4222222222222", ExpiryDate: "06/25", CVC: "999"},
			network: domain.NetworkVisa,
		},
	}

	v := newValidator(june2025)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.card)
			require.True(t, res.Valid, "unexpected errors: %v", res.Errors)
			require.Equal(t, tt.network, res.Network)
			require.NotNil(t, res.Errors)
			require.Empty(t, res.Errors)
		})
	}
}

func TestValidate_Owner(t *testing.T) {
	v := newValidator(june2025)

	card := validVisa()
	card.Owner = ""
	res := v.Validate(card)
	require.False(t, res.Valid)
	require.Equal(t, []string{cardvalidator.MsgOwnerRequired}, res.Errors)

	card.Owner = "John Doe 4111111111111111"
	res = v.Validate(card)
	require.False(t, res.Valid)
	require.Equal(t, []string{cardvalidator.MsgOwnerInvalid}, res.Errors)

	card.Owner = "O'Brien"
	res = v.Validate(card)
	require.Contains(t, res.Errors, cardvalidator.MsgOwnerInvalid)

	card.Owner = "Zoë"
	res = v.Validate(card)
	require.Contains(t, res.Errors, cardvalidator.MsgOwnerInvalid, "only ASCII letters are accepted")

	card.Owner = "John\tDoe"
	res = v.Validate(card)
	require.True(t, res.Valid)
}

func TestValidate_Number(t *testing.T) {
	v := newValidator(june2025)

	card := validVisa()
	card.Number = "1234567890123456"
	res := v.Validate(card)
	require.False(t, res.Valid)
	require.Equal(t, domain.NetworkUnknown, res.Network)
	require.Contains(t, res.Errors, cardvalidator.MsgInvalidCardNumber)

	card.Number = ""
	res = v.Validate(card)
	require.False(t, res.Valid)
	// CVC cannot be valid without a known network
	require.Equal(t, []string{cardvalidator.MsgCardNumberRequired, cardvalidator.MsgInvalidCVC}, res.Errors)
}

func TestValidate_CVC(t *testing.T) {
	v := newValidator(june2025)

	card := domain.Card{Owner: "John Doe", Number: "371449635398431", ExpiryDate: "12/25", CVC: "123"}
	res := v.Validate(card)
	require.False(t, res.Valid)
	require.Equal(t, domain.NetworkAmericanExpress, res.Network)
	require.Equal(t, []string{cardvalidator.MsgInvalidCVC}, res.Errors)

	card = validVisa()
	card.CVC = "1234"
	res = v.Validate(card)
	require.Equal(t, []string{cardvalidator.MsgInvalidCVC}, res.Errors)

	card.CVC = ""
	res = v.Validate(card)
	require.Equal(t, []string{cardvalidator.MsgCVCRequired}, res.Errors)
	require.Equal(t, "Card CVC is required.", cardvalidator.MsgCVCRequired)
}

func TestValidate_Expiry(t *testing.T) {
	tests := []struct {
		name   string
		expiry string
		errs   []string
	}{
		{name: "missing", expiry: "", errs: []string{cardvalidator.MsgExpiryRequired}},
		{name: "expired year", expiry: "12/20", errs: []string{cardvalidator.MsgCardExpired}},
		{name: "expired month", expiry: "05/25", errs: []string{cardvalidator.MsgCardExpired}},
		{name: "same month", expiry: "06/25", errs: []string{}},
		{name: "next year", expiry: "01/26", errs: []string{}},
		{name: "long year", expiry: "2025/12", errs: []string{cardvalidator.MsgInvalidExpiry}},
		{name: "month 13", expiry: "13/25", errs: []string{cardvalidator.MsgInvalidExpiry}},
		{name: "month 00", expiry: "00/25", errs: []string{cardvalidator.MsgInvalidExpiry}},
		{name: "single digit month", expiry: "6/25", errs: []string{cardvalidator.MsgInvalidExpiry}},
		{name: "no separator", expiry: "0625", errs: []string{cardvalidator.MsgInvalidExpiry}},
		{name: "before window", expiry: "12/19", errs: []string{cardvalidator.MsgInvalidExpiry}},
		{name: "after window", expiry: "01/30", errs: []string{cardvalidator.MsgInvalidExpiry}},
	}

	v := newValidator(june2025)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validVisa()
			card.ExpiryDate = tt.expiry

			res := v.Validate(card)
			require.Equal(t, tt.errs, res.Errors)
			require.Equal(t, len(tt.errs) == 0, res.Valid)
		})
	}
}

func TestValidate_ExpiryWindow(t *testing.T) {
	opts := cardvalidator.DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2031, time.March, 1, 0, 0, 0, 0, time.UTC) }
	opts.MaxExpiryYear = 35
	v := cardvalidator.New(opts)

	card := validVisa()
	card.ExpiryDate = "12/33"
	require.True(t, v.Validate(card).Valid)

	card.ExpiryDate = "02/31"
	require.Equal(t, []string{cardvalidator.MsgCardExpired}, v.Validate(card).Errors)

	card.ExpiryDate = "01/36"
	require.Equal(t, []string{cardvalidator.MsgInvalidExpiry}, v.Validate(card).Errors)
}

func TestValidate_MultipleErrors(t *testing.T) {
	v := newValidator(june2025)

	res := v.Validate(domain.Card{
		Owner:      "John Doe 4111111111111111",
		Number:     "4111111111",
		ExpiryDate: "2029/09",
		CVC:        "12354",
	})

	require.False(t, res.Valid)
	require.Equal(t, domain.NetworkUnknown, res.Network)
	require.Equal(t, []string{
		cardvalidator.MsgOwnerInvalid,
		cardvalidator.MsgInvalidCardNumber,
		cardvalidator.MsgInvalidCVC,
		cardvalidator.MsgInvalidExpiry,
	}, res.Errors)
}

func TestValidate_AllMissing(t *testing.T) {
	res := newValidator(june2025).Validate(domain.Card{})

	require.False(t, res.Valid)
	require.Equal(t, domain.NetworkUnknown, res.Network)
	require.Equal(t, []string{
		"Card owner is required.",
		"Card number is required.",
		"Card CVC is required.",
		"Card expiration date is required.",
	}, res.Errors)
}

func TestValidate_DefaultClock(t *testing.T) {
	// a nil clock falls back to time.Now; 12/20 is in the past for any current date
	v := cardvalidator.New(cardvalidator.Options{MinExpiryYear: 20, MaxExpiryYear: 29})

	card := validVisa()
	card.ExpiryDate = "12/20"
	require.Contains(t, v.Validate(card).Errors, cardvalidator.MsgCardExpired)
}

func TestValidate_Concurrent(t *testing.T) {
	v := newValidator(june2025)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := v.Validate(validVisa())
			if !res.Valid || res.Network != domain.NetworkVisa {
				t.Errorf("unexpected verdict: %+v", res)
			}
		}()
	}
	wg.Wait()
}

func TestNewOptions(t *testing.T) {
	var cfg config.Config
	cfg.Validator.MinExpiryYear = 24
	cfg.Validator.MaxExpiryYear = 40

	opts := cardvalidator.NewOptions(&cfg)
	require.Equal(t, 24, opts.MinExpiryYear)
	require.Equal(t, 40, opts.MaxExpiryYear)
	require.NotNil(t, opts.Now)
}
