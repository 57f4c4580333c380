package v1handler

import (
	"payments/pkg/domain"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DecodeCard reads a card record from a JSON object. Keys are matched case
// insensitively, unknown keys are ignored and null or missing fields decode to
// empty strings so the validator reports them as required.
func DecodeCard(data []byte) (domain.Card, error) {
	var card domain.Card

	d := jx.DecodeBytes(data)
	if tt := d.Next(); tt != jx.Object {
		return card, errors.Errorf("expected JSON object, got %s", tt)
	}

	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var dst *string
		switch strings.ToLower(string(key)) {
		case "cardowner":
			dst = &card.Owner
		case "number":
			dst = &card.Number
		case "expirydate":
			dst = &card.ExpiryDate
		case "cvc":
			dst = &card.CVC
		default:
			return d.Skip()
		}

		switch tt := d.Next(); tt {
		case jx.Null:
			return d.Null()
		case jx.String:
			v, err := d.Str()
			if err != nil {
				return errors.Wrapf(err, "decode %q", key)
			}
			*dst = v

			return nil
		default:
			return errors.Errorf("field %q must be a string, got %s", key, tt)
		}
	}); err != nil {
		return domain.Card{}, errors.Wrap(err, "decode card")
	}

	if tt := d.Next(); tt != jx.Invalid {
		return domain.Card{}, errors.Errorf("unexpected %s after card object", tt)
	}

	return card, nil
}

// encodeNetwork renders the success body: the network name as a JSON string.
func encodeNetwork(network domain.Network) []byte {
	var e jx.Encoder
	e.Str(string(network))

	return e.Bytes()
}

// encodeMessages renders the failure body: the verdict errors as a JSON array.
func encodeMessages(messages []string) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, m := range messages {
		e.Str(m)
	}
	e.ArrEnd()

	return e.Bytes()
}

func encodeError(body ErrorBody) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Str(body.Code)
	e.FieldStart("message")
	e.Str(body.Message)
	e.ObjEnd()

	return e.Bytes()
}
