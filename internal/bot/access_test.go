package bot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveCapability(t *testing.T) {
	var roles roleSet
	roles.add("admin-global", "vendor-global")
	roles.add("admin-guild", "")

	tests := []struct {
		name  string
		roles []string
		want  Capability
	}{
		{"no roles", nil, CapabilityCustomer},
		{"unrelated role", []string{"customers"}, CapabilityCustomer},
		{"vendor", []string{"vendor-global"}, CapabilityVendor},
		{"global admin", []string{"admin-global"}, CapabilityAdmin},
		{"guild admin", []string{"customers", "admin-guild"}, CapabilityAdmin},
		{"admin wins over vendor", []string{"vendor-global", "admin-guild"}, CapabilityAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolveCapability(tt.roles, roles))
		})
	}
}

func TestResolveCapabilityWithoutConfiguredRoles(t *testing.T) {
	var roles roleSet
	roles.add("", "")
	require.Equal(t, CapabilityCustomer, resolveCapability([]string{""}, roles))
}

func TestCapabilityAllows(t *testing.T) {
	require.True(t, CapabilityAdmin.Allows(CapabilityVendor))
	require.True(t, CapabilityAdmin.Allows(CapabilityCustomer))
	require.True(t, CapabilityVendor.Allows(CapabilityVendor))
	require.False(t, CapabilityVendor.Allows(CapabilityAdmin))
	require.False(t, CapabilityCustomer.Allows(CapabilityVendor))
}

func TestChannelAllowed(t *testing.T) {
	require.True(t, channelAllowed("", "anything"))
	require.True(t, channelAllowed("123", "123"))
	require.False(t, channelAllowed("123", "456"))
}

func TestAccessDenial(t *testing.T) {
	tests := []struct {
		name     string
		inGuild  bool
		have     Capability
		required Capability
		want     string
	}{
		{"customer command in DM", false, CapabilityCustomer, CapabilityCustomer, ""},
		{"vendor command in DM", false, CapabilityCustomer, CapabilityVendor, denyGuildOnly},
		{"admin command in DM", false, CapabilityCustomer, CapabilityAdmin, denyGuildOnly},
		{"customer needs vendor", true, CapabilityCustomer, CapabilityVendor, denyVendor},
		{"vendor needs admin", true, CapabilityVendor, CapabilityAdmin, denyAdmin},
		{"vendor allowed", true, CapabilityVendor, CapabilityVendor, ""},
		{"admin implies vendor", true, CapabilityAdmin, CapabilityVendor, ""},
		{"admin allowed", true, CapabilityAdmin, CapabilityAdmin, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, accessDenial(tt.inGuild, tt.have, tt.required))
		})
	}
}

func TestChannelDenial(t *testing.T) {
	require.Empty(t, channelDenial("", "anything", "redeem"))
	require.Empty(t, channelDenial("123", "123", "redeem"))

	msg := channelDenial("123", "456", "redeem")
	require.Contains(t, msg, "redeem channel")
	require.Contains(t, msg, "<#123>")
}
