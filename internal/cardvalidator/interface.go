package cardvalidator

import "payments/pkg/domain"

// Validator checks a card record and classifies its network.
//
//go:generate mockgen -package mockcardvalidator -source=interface.go -destination=mock/mockcardvalidator.go *
type Validator interface {
	// Validate runs every field check and returns the aggregated verdict. It never fails.
	Validate(card domain.Card) domain.Verdict
}
