package cardvalidator

// Messages reported in domain.Verdict.Errors. The exact text is part of the public API.
const (
	MsgCardNumberRequired = "Card number is required."
	MsgInvalidCardNumber  = "Invalid card number."
	MsgCVCRequired        = "Card CVC is required."
	MsgInvalidCVC         = "Invalid CVC."
	MsgOwnerRequired      = "Card owner is required."
	MsgOwnerInvalid       = "Card owner field should contain only letters."
	MsgExpiryRequired     = "Card expiration date is required."
	MsgInvalidExpiry      = "Invalid card expiration date."
	MsgCardExpired        = "Card has expired."
)

// Field names used to build "<field> is required." messages.
const (
	fieldOwner  = "Card owner"
	fieldNumber = "Card number"
	fieldCVC    = "Card CVC"
	fieldExpiry = "Card expiration date"
)

func requiredMessage(field string) string {
	return field + " is required."
}
