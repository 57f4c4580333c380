package domain

// Network is the card-issuing scheme inferred from a card number's prefix and length.
// Its string value is also the wire representation returned by the API.
type Network string

const (
	// NetworkVisa covers numbers starting with 4 that are 13 or 16 digits long.
	NetworkVisa Network = "Visa"
	// NetworkMasterCard covers 16-digit numbers starting with 51 through 55.
	NetworkMasterCard Network = "MasterCard"
	// NetworkAmericanExpress covers 15-digit numbers starting with 34 or 37.
	NetworkAmericanExpress Network = "AmericanExpress"
	// NetworkUnknown is reported when no known pattern matches the number.
	NetworkUnknown Network = "Unknown"
)

// Card is a user-submitted card record. It has no identity beyond a single validation call.
type Card struct {
	// Owner is the card holder name as printed on the card.
	Owner string `json:"cardOwner"`
	// Number is the primary account number, digits only.
	Number string `json:"number"`
	// ExpiryDate is the card face expiry in MM/YY form.
	ExpiryDate string `json:"expiryDate"`
	// CVC is the card verification code, digits only.
	CVC string `json:"cvc"`
}

// Verdict is the outcome of validating a Card.
type Verdict struct {
	// Valid is true when Errors is empty.
	Valid bool `json:"isValid"`
	// Network is the detected network; it is set even when the card is invalid.
	Network Network `json:"network"`
	// Errors lists every failed check in evaluation order.
	Errors []string `json:"errors"`
}
