package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"mealbot/internal/pkg/errs"
	"mealbot/internal/pkg/guard"
)

// whatsappPrefix marks identifiers arriving from the messaging provider,
// e.g. "whatsapp:+254712345678". It is stripped during normalization.
const whatsappPrefix = "whatsapp:"

const minPhoneDigits = 7

// ErrPhoneIsNotConstructed is returned when validating a zero-value Phone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError(
	"Phone must be created via PhoneFromString")

// Phone identifies a user by their WhatsApp phone number. It doubles as the
// identity of buyers, riders, and sessions, so two phones comparing equal
// means the same person.
//
// Phone is normalized to the bare international form "+254712345678";
// provider prefixes and surrounding whitespace are removed on construction.
type Phone struct {
	value string
	guard guard.ConstructorGuard
}

// PhoneFromString parses and normalizes a phone identifier.
// Accepts "whatsapp:+254712345678" or "+254712345678".
func PhoneFromString(s string) (Phone, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, whatsappPrefix)

	if v == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	if !strings.HasPrefix(v, "+") {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q must be in international format starting with +", s))
	}

	digits := 0
	for _, r := range v[1:] {
		if !unicode.IsDigit(r) {
			return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
				fmt.Errorf("%q contains non-digit characters", s))
		}
		digits++
	}
	if digits < minPhoneDigits {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q is too short", s))
	}

	return Phone{value: v, guard: guard.NewConstructorGuard()}, nil
}

// String returns the normalized phone, e.g. "+254712345678".
func (p Phone) String() string {
	return p.value
}

// WhatsAppAddress returns the provider-addressable form, e.g.
// "whatsapp:+254712345678".
func (p Phone) WhatsAppAddress() string {
	return whatsappPrefix + p.value
}

// IsEqual compares two phones by normalized value.
func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}

// Validate reports whether the phone was properly constructed.
func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}
