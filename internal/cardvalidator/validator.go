// Package cardvalidator validates user-submitted card records and detects
// the card network from the number's prefix and length.
package cardvalidator

import (
	"payments/internal/config"
	"payments/pkg/domain"
	"regexp"
	"strconv"
	"time"
)

const (
	// DefaultMinExpiryYear and DefaultMaxExpiryYear bound the accepted two-digit
	// expiry year. Together they accept the 2020s only.
	DefaultMinExpiryYear = 20
	DefaultMaxExpiryYear = 29

	// yearOffset turns a two-digit expiry year into a calendar year.
	yearOffset = 2000
)

var (
	ownerPattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)             //nolint: gochecknoglobals
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`) //nolint: gochecknoglobals
)

// Options configure the validation rules that may differ between deployments.
type Options struct {
	// Now returns the current time used to decide whether a card has expired.
	// time.Now is used when nil.
	Now func() time.Time
	// MinExpiryYear is the smallest accepted two-digit expiry year (inclusive).
	MinExpiryYear int
	// MaxExpiryYear is the largest accepted two-digit expiry year (inclusive).
	MaxExpiryYear int
}

// DefaultOptions returns the options matching the historical behavior of the service.
func DefaultOptions() Options {
	return Options{
		Now:           time.Now,
		MinExpiryYear: DefaultMinExpiryYear,
		MaxExpiryYear: DefaultMaxExpiryYear,
	}
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Now:           time.Now,
		MinExpiryYear: cfg.Validator.MinExpiryYear,
		MaxExpiryYear: cfg.Validator.MaxExpiryYear,
	}
}

// Service is the Validator implementation. It holds no mutable state and is
// safe for concurrent use.
type Service struct {
	options Options
}

// Ensure Service implements Validator.
var _ Validator = (*Service)(nil)

// New returns a Service using opts.
func New(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{options: opts}
}

// Validate runs the owner, number, CVC and expiry checks independently and
// collects every failure, in that order. The detected network is reported
// even when the card is invalid.
func (s *Service) Validate(card domain.Card) domain.Verdict {
	var errs []string
	network := DetectNetwork(card.Number)

	errs = s.checkOwner(card.Owner, errs)
	errs = s.checkNumber(card.Number, network, errs)
	errs = s.checkCVC(card.CVC, network, errs)
	errs = s.checkExpiry(card.ExpiryDate, errs)

	if errs == nil {
		errs = []string{}
	}

	return domain.Verdict{
		Valid:   len(errs) == 0,
		Network: network,
		Errors:  errs,
	}
}

func (s *Service) checkOwner(owner string, errs []string) []string {
	if owner == "" {
		return append(errs, requiredMessage(fieldOwner))
	}
	if !ownerPattern.MatchString(owner) {
		return append(errs, MsgOwnerInvalid)
	}

	return errs
}

func (s *Service) checkNumber(number string, network domain.Network, errs []string) []string {
	if number == "" {
		return append(errs, requiredMessage(fieldNumber))
	}
	if network == domain.NetworkUnknown {
		return append(errs, MsgInvalidCardNumber)
	}

	return errs
}

func (s *Service) checkCVC(cvc string, network domain.Network, errs []string) []string {
	if cvc == "" {
		return append(errs, requiredMessage(fieldCVC))
	}
	if !ValidCVC(cvc, network) {
		return append(errs, MsgInvalidCVC)
	}

	return errs
}

func (s *Service) checkExpiry(expiry string, errs []string) []string {
	if expiry == "" {
		return append(errs, requiredMessage(fieldExpiry))
	}

	month, year, ok := s.parseExpiry(expiry)
	if !ok {
		return append(errs, MsgInvalidExpiry)
	}

	now := s.options.Now()
	if monthIndex(year, month) < monthIndex(now.Year(), int(now.Month())) {
		return append(errs, MsgCardExpired)
	}

	return errs
}

// parseExpiry splits an MM/YY expiry into its month and calendar year. ok is
// false when the layout is wrong or the year falls outside the accepted window.
func (s *Service) parseExpiry(expiry string) (month, year int, ok bool) {
	m := expiryPattern.FindStringSubmatch(expiry)
	if m == nil {
		return 0, 0, false
	}

	// both groups are guaranteed to be two ASCII digits by expiryPattern
	month, _ = strconv.Atoi(m[1])
	yy, _ := strconv.Atoi(m[2])
	if yy < s.options.MinExpiryYear || yy > s.options.MaxExpiryYear {
		return 0, 0, false
	}

	return month, yearOffset + yy, true
}

// monthIndex maps a (year, month) pair onto a single comparable counter.
func monthIndex(year, month int) int {
	return year*12 + month
}
