package cardvalidator

import (
	"payments/pkg/domain"
	"regexp"
)

// networkPattern pairs a network with the number layout it issues.
type networkPattern struct {
	network domain.Network
	pattern *regexp.Regexp
}

// networkPatterns is evaluated in order; the first match wins.
var networkPatterns = []networkPattern{ //nolint: gochecknoglobals
	{network: domain.NetworkVisa, pattern: regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)},
	{network: domain.NetworkMasterCard, pattern: regexp.MustCompile(`^5[1-5][0-9]{14}$`)},
	{network: domain.NetworkAmericanExpress, pattern: regexp.MustCompile(`^3[47][0-9]{13}$`)},
}

// cvcPatterns maps every known network to the CVC layout it prints.
// Networks missing from the map accept no CVC at all.
var cvcPatterns = map[domain.Network]*regexp.Regexp{ //nolint: gochecknoglobals
	domain.NetworkVisa:            regexp.MustCompile(`^[0-9]{3}$`),
	domain.NetworkMasterCard:      regexp.MustCompile(`^[0-9]{3}$`),
	domain.NetworkAmericanExpress: regexp.MustCompile(`^[0-9]{4}$`),
}

// DetectNetwork returns the network whose prefix and length match number,
// or domain.NetworkUnknown when none does.
func DetectNetwork(number string) domain.Network {
	for _, p := range networkPatterns {
		if p.pattern.MatchString(number) {
			return p.network
		}
	}

	return domain.NetworkUnknown
}

// ValidCVC reports whether cvc has the length network prints on its cards.
func ValidCVC(cvc string, network domain.Network) bool {
	p, ok := cvcPatterns[network]
	if !ok {
		return false
	}

	return p.MatchString(cvc)
}
