package domain

import (
	"encoding/json"
	"fmt"
)

// IntentKind names the variant of an Intent.
type IntentKind string

const (
	IntentOpenAuthorization IntentKind = "open_authorization"
	IntentOpenPayment       IntentKind = "open_payment"
	IntentOpenIntercom      IntentKind = "open_intercom"
)

// Intent is a typed destination produced by the resolver.
// Values are immutable once built; the set of variants is closed.
type Intent interface {
	Kind() IntentKind
	isIntent()
}

// OpenAuthorization asks the app to restore an authorization session.
type OpenAuthorization struct {
	Token string
}

// PaymentKind distinguishes the payment destinations.
type PaymentKind string

const (
	PaymentProvider PaymentKind = "provider"
	PaymentSuccess  PaymentKind = "success"
	PaymentError    PaymentKind = "error"
)

// OpenPayment asks the app to show a payment flow or its outcome.
type OpenPayment struct {
	Payment   PaymentKind
	Reference string
}

// OpenIntercom asks the app to open a support conversation.
type OpenIntercom struct {
	ID string
}

func (OpenAuthorization) Kind() IntentKind { return IntentOpenAuthorization }
func (OpenPayment) Kind() IntentKind       { return IntentOpenPayment }
func (OpenIntercom) Kind() IntentKind      { return IntentOpenIntercom }

func (OpenAuthorization) isIntent() {}
func (OpenPayment) isIntent()       {}
func (OpenIntercom) isIntent()      {}

// IntentEnvelope is the flat wire form of an Intent.
type IntentEnvelope struct {
	Kind        IntentKind  `json:"kind"`
	Token       string      `json:"token,omitempty"`
	PaymentKind PaymentKind `json:"payment_kind,omitempty"`
	Reference   string      `json:"reference,omitempty"`
	ID          string      `json:"id,omitempty"`
}

// Envelope flattens an intent. A nil intent yields nil.
func Envelope(in Intent) *IntentEnvelope {
	switch v := in.(type) {
	case OpenAuthorization:
		return &IntentEnvelope{Kind: v.Kind(), Token: v.Token}
	case OpenPayment:
		return &IntentEnvelope{Kind: v.Kind(), PaymentKind: v.Payment, Reference: v.Reference}
	case OpenIntercom:
		return &IntentEnvelope{Kind: v.Kind(), ID: v.ID}
	}
	return nil
}

// Intent rebuilds the typed intent from its envelope.
func (e IntentEnvelope) Intent() (Intent, error) {
	switch e.Kind {
	case IntentOpenAuthorization:
		return OpenAuthorization{Token: e.Token}, nil
	case IntentOpenPayment:
		switch e.PaymentKind {
		case PaymentProvider, PaymentSuccess, PaymentError:
		default:
			return nil, fmt.Errorf("unknown payment kind %q", e.PaymentKind)
		}
		return OpenPayment{Payment: e.PaymentKind, Reference: e.Reference}, nil
	case IntentOpenIntercom:
		return OpenIntercom{ID: e.ID}, nil
	}
	return nil, fmt.Errorf("unknown intent kind %q", e.Kind)
}

// EncodeIntent serializes an intent to its JSON envelope.
func EncodeIntent(in Intent) ([]byte, error) {
	env := Envelope(in)
	if env == nil {
		return nil, fmt.Errorf("cannot encode intent %T", in)
	}
	return json.Marshal(env)
}

// DecodeIntent parses a JSON envelope back into an intent.
func DecodeIntent(data []byte) (Intent, error) {
	var env IntentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intent: %w", err)
	}
	return env.Intent()
}
