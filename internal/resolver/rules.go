package resolver

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Rule is one case of the path cascade. A rule matches when the path starts
// with Prefix; Build receives the remainder after the prefix.
type Rule struct {
	Name   string
	Prefix string
	Build  func(rest string) (domain.Intent, error)
}

// Sub-route tokens of the public link path.
const (
	PrefixBackToLogin    = "backToLogin?params="
	PrefixPaymentLink    = "sbp?link="
	PrefixPaymentSuccess = "payment/success"
	PrefixPaymentError   = "payment/error"
	PrefixIntercom       = "intercom/"
)

// DefaultRules returns the cascade in its fixed order. First match wins.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "back_to_login", Prefix: PrefixBackToLogin, Build: buildAuthorization},
		{Name: "payment_link", Prefix: PrefixPaymentLink, Build: buildPayment(domain.PaymentProvider)},
		{Name: "payment_success", Prefix: PrefixPaymentSuccess, Build: buildPayment(domain.PaymentSuccess)},
		{Name: "payment_error", Prefix: PrefixPaymentError, Build: buildPayment(domain.PaymentError)},
		{Name: "intercom", Prefix: PrefixIntercom, Build: buildIntercom},
	}
}

func buildAuthorization(rest string) (domain.Intent, error) {
	token, err := decodeToken(rest)
	if err != nil {
		return nil, err
	}
	return domain.OpenAuthorization{Token: token}, nil
}

func buildPayment(kind domain.PaymentKind) func(string) (domain.Intent, error) {
	return func(rest string) (domain.Intent, error) {
		return domain.OpenPayment{Payment: kind, Reference: rest}, nil
	}
}

func buildIntercom(rest string) (domain.Intent, error) {
	return domain.OpenIntercom{ID: rest}, nil
}

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// decodeToken accepts padded or unpadded, standard or URL-safe base64,
// optionally percent-encoded. A literal + stays a base64 character.
func decodeToken(raw string) (string, error) {
	if strings.Contains(raw, "%") {
		unescaped, err := url.PathUnescape(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrDecode, err)
		}
		raw = unescaped
	}
	for _, enc := range encodings {
		data, err := enc.DecodeString(raw)
		if err != nil {
			continue
		}
		if len(data) == 0 {
			return "", fmt.Errorf("%w: empty payload", domain.ErrDecode)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: not base64", domain.ErrDecode)
}
