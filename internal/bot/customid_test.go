package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCustomID(t *testing.T) {
	tests := []struct {
		raw  string
		want customID
		ok   bool
	}{
		{"redeem:donut", customID{kindRedeem, "donut"}, true},
		{"redeem:vendor-12", customID{kindRedeem, "vendor-12"}, true},
		{"redeem:vendor", customID{kindRedeem, redeemVendorList}, true},
		{"redeem:pizza", customID{}, false},
		{"redeem:vendor-x", customID{}, false},
		{"redeem:vendor-05", customID{}, false},
		{"order:place", customID{kindOrder, orderPlace}, true},
		{"order:status", customID{kindOrder, orderStatus}, true},
		{"order:refund", customID{}, false},
		{"menu:daily", customID{kindMenu, menuDaily}, true},
		{"menu:admin_give_points", customID{kindMenu, menuAdminGivePoints}, true},
		{"vendor:add", customID{kindVendor, vendorAdd}, true},
		{"vendor:edit", customID{}, false},
		{"modal:order_cancel", customID{kindModal, formOrderCancel}, true},
		{"modal:", customID{}, false},
		{"unknown:thing", customID{}, false},
		{"no-separator", customID{}, false},
		{"", customID{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseCustomID(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCustomIDBuildersParse(t *testing.T) {
	built := []string{
		redeemButtonID("coffee"),
		orderButtonID(orderCancel),
		menuButtonID(menuTier),
		vendorButtonID(vendorRemove),
		modalFormID(formApply),
	}
	for _, raw := range built {
		id, ok := parseCustomID(raw)
		require.True(t, ok, raw)
		require.Equal(t, raw, id.String())
	}
}
