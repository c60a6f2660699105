package checkout

import "strings"

// Gate validation is pure: field values come in as a plain map, the
// result names the first offending field in human-readable form. The
// transport layer extracts values and calls these.

type GateResult struct {
	OK      bool
	Field   string // first offending field, display name
	Message string
	Missing []string // every blank required field, display names
}

type fieldDef struct {
	key  string
	name string
}

var shippingFields = []fieldDef{
	{"firstName", "First Name"},
	{"lastName", "Last Name"},
	{"email", "Email"},
	{"address", "Address"},
	{"city", "City"},
	{"zip", "Zip"},
}

var paymentFields = []fieldDef{
	{"cardName", "Name on Card"},
	{"cardNumber", "Card Number"},
	{"expiry", "Expiry"},
	{"cvc", "CVC"},
}

const (
	cardNumberMin = 3
	cardNumberMax = 22
)

func ValidateShipping(fields map[string]string) GateResult {
	return requireAll(shippingFields, fields)
}

// ValidatePayment checks presence, then a deliberately loose card
// number length window after stripping whitespace. This is a demo
// validator, not a Luhn check.
func ValidatePayment(fields map[string]string) GateResult {
	if res := requireAll(paymentFields, fields); !res.OK {
		return res
	}
	card := strings.Join(strings.Fields(fields["cardNumber"]), "")
	if n := len(card); n < cardNumberMin || n > cardNumberMax {
		return GateResult{Field: "Card Number", Message: "Card Number looks invalid"}
	}
	return GateResult{OK: true}
}

func requireAll(defs []fieldDef, fields map[string]string) GateResult {
	res := GateResult{OK: true}
	for _, d := range defs {
		if strings.TrimSpace(fields[d.key]) != "" {
			continue
		}
		res.OK = false
		res.Missing = append(res.Missing, d.name)
		if res.Field == "" {
			res.Field = d.name
			res.Message = d.name + " is required"
		}
	}
	return res
}
