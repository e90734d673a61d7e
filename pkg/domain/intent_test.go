package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntent_EnvelopeRoundTrip(t *testing.T) {
	intents := []domain.Intent{
		domain.OpenAuthorization{Token: "abc123"},
		domain.OpenPayment{Payment: domain.PaymentSuccess, Reference: "?order=7"},
		domain.OpenIntercom{ID: "42"},
	}
	for _, in := range intents {
		t.Run(string(in.Kind()), func(t *testing.T) {
			data, err := domain.EncodeIntent(in)
			require.NoError(t, err)

			out, err := domain.DecodeIntent(data)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestIntent_DecodeRejectsUnknown(t *testing.T) {
	_, err := domain.DecodeIntent([]byte(`{"kind":"open_teleport"}`))
	assert.Error(t, err)

	_, err = domain.DecodeIntent([]byte(`{"kind":"open_payment","payment_kind":"refund"}`))
	assert.Error(t, err)

	_, err = domain.DecodeIntent([]byte(`not json`))
	assert.Error(t, err)
}

func TestIntent_EnvelopeOfNil(t *testing.T) {
	assert.Nil(t, domain.Envelope(nil))
	_, err := domain.EncodeIntent(nil)
	assert.Error(t, err)
}

func TestResolveError_Unwrap(t *testing.T) {
	err := domain.NewResolveError("app://x", domain.ErrBadScheme)
	assert.True(t, errors.Is(err, domain.ErrBadScheme))
	assert.Contains(t, err.Error(), `"app://x"`)
}

func TestRect_Lerp(t *testing.T) {
	from := domain.Rect{X: 0, Y: 0, W: 100, H: 200}
	to := domain.Rect{X: 100, Y: 0, W: 100, H: 200}

	assert.Equal(t, from, from.Lerp(to, 0))
	assert.Equal(t, to, from.Lerp(to, 1))
	assert.Equal(t, 50.0, from.Lerp(to, 0.5).X)
}

func TestSlide_Directions(t *testing.T) {
	bounds := domain.Rect{W: 320, H: 640}

	fwd := domain.SlideForward(bounds, 0)
	assert.Equal(t, 320.0, fwd.IncomingStart.Frame.X)
	assert.Equal(t, -320.0, fwd.OutgoingEnd.Frame.X)
	assert.Equal(t, bounds, fwd.IncomingEnd.Frame)

	back := domain.SlideBackward(bounds, 0)
	assert.Equal(t, -320.0, back.IncomingStart.Frame.X)
	assert.Equal(t, 320.0, back.OutgoingEnd.Frame.X)
}
