package router_test

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/router"
	"github.com/stretchr/testify/assert"
)

func TestTable_Allows(t *testing.T) {
	table := testTable()
	shift := router.CrossFadeTo(screenRoot, domain.DefaultCrossFade(0))
	slide := router.SlideTo(screenRoot, domain.SlideSnapshot{})
	notify := router.Notify[screen](domain.Notification{Title: "hi"})
	spin := router.Spinner[screen](true)
	fwd := router.Forward[screen]("logout")

	tests := []struct {
		name    string
		current screen
		req     router.Request[screen]
		want    bool
	}{
		{"root to root denied", screenRoot, router.Navigate(screenRoot, nil), false},
		{"root to detail allowed", screenRoot, router.Navigate(screenDetail, nil), true},
		{"detail to detail denied", screenDetail, router.Navigate(screenDetail, nil), false},
		{"detail to root allowed", screenDetail, router.Navigate(screenRoot, nil), true},
		{"forbidden pair denied", screenExtra, router.Navigate(screenDetail, nil), false},
		{"to security allowed", screenRoot, router.Navigate(screenSecurity, nil), true},
		{"security to root denied", screenSecurity, router.Navigate(screenRoot, nil), false},
		{"security to detail denied", screenSecurity, router.Navigate(screenDetail, nil), false},
		{"security forward denied", screenSecurity, fwd, false},
		{"security cross-fade allowed", screenSecurity, shift, true},
		{"security slide allowed", screenSecurity, slide, true},
		{"security notify allowed", screenSecurity, notify, true},
		{"security spinner allowed", screenSecurity, spin, true},
		{"forward allowed", screenDetail, fwd, true},
		{"shift to current allowed", screenRoot, shift, true},
		{"unknown kind denied", screenRoot, router.Request[screen]{Kind: "teleport"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Allows(tt.current, tt.req))
		})
	}
}

func TestTable_IsLocked(t *testing.T) {
	table := testTable()
	assert.True(t, table.IsLocked(screenSecurity))
	assert.False(t, table.IsLocked(screenRoot))
}
