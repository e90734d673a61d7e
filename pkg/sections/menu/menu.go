// Package menu is the main section: payments and support.
package menu

import (
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/router"
	"github.com/aretw0/waypoint/pkg/sections"
)

// Name identifies the section.
const Name = "menu"

// Screen is a destination of the menu section.
type Screen int

const (
	Home Screen = iota
	Payments
	PaymentResult
	Support
	Security
)

// Screens lists every screen in declaration order.
var Screens = []Screen{Home, Payments, PaymentResult, Support, Security}

func (s Screen) String() string {
	switch s {
	case Home:
		return "home"
	case Payments:
		return "payments"
	case PaymentResult:
		return "payment_result"
	case Support:
		return "support"
	case Security:
		return "security"
	}
	return "unknown"
}

// Parse returns the screen named s.
func Parse(s string) (Screen, error) {
	return sections.Lookup(Screens, s)
}

// Table is the menu presentability rule. A payment outcome must not cover
// an open support conversation.
func Table() router.Table[Screen] {
	return router.Table[Screen]{
		Locked: []Screen{Security},
		Forbidden: map[Screen][]Screen{
			Support: {PaymentResult},
		},
	}
}

// Route maps navigation intents onto menu requests.
func Route(in domain.Intent) (router.Request[Screen], bool) {
	switch v := in.(type) {
	case domain.OpenPayment:
		if v.Payment == domain.PaymentProvider {
			return router.Navigate(Payments, v), true
		}
		return router.Navigate(PaymentResult, v), true
	case domain.OpenIntercom:
		return router.Navigate(Support, v), true
	}
	return router.Request[Screen]{}, false
}

// Config returns the menu section configuration. fade is the duration of the
// cross-fade back to Home after the security overlay.
func Config(fade time.Duration) router.Config[Screen] {
	return router.Config[Screen]{
		Name:      Name,
		Root:      Home,
		Table:     Table(),
		Builder:   sections.NodeBuilder[Screen](Name),
		Intents:   Route,
		Lifecycle: sections.Privacy(Home, Security, fade),
	}
}

// New creates the menu router.
func New(fade time.Duration, opts ...router.Option) *router.Router[Screen] {
	return router.New(Config(fade), opts...)
}
