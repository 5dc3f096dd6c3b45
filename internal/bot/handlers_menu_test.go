package bot

import (
	"testing"

	"sweetholes/internal/config"
	"sweetholes/internal/database"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestPanelMessagesUseKnownIDs(t *testing.T) {
	for _, panel := range []string{panelMenu, panelOrder, panelRedeem, panelVendor, panelAdmin} {
		t.Run(panel, func(t *testing.T) {
			msg, ok := panelMessage(panel)
			require.True(t, ok)
			require.Len(t, msg.Embeds, 1)
			require.NotEmpty(t, msg.Components)
			require.LessOrEqual(t, len(msg.Components), 5)

			for _, row := range msg.Components {
				actions := row.(discordgo.ActionsRow)
				require.LessOrEqual(t, len(actions.Components), 5)
				for _, comp := range actions.Components {
					btn := comp.(discordgo.Button)
					_, ok := parseCustomID(btn.CustomID)
					require.True(t, ok, btn.CustomID)
				}
			}
		})
	}

	_, ok := panelMessage("nope")
	require.False(t, ok)
}

func TestRedeemPanelListsEveryFixedReward(t *testing.T) {
	msg, ok := panelMessage(panelRedeem)
	require.True(t, ok)

	var ids []string
	for _, row := range msg.Components {
		for _, comp := range row.(discordgo.ActionsRow).Components {
			ids = append(ids, comp.(discordgo.Button).CustomID)
		}
	}
	for _, entry := range database.FixedCatalog {
		require.Contains(t, ids, redeemButtonID(entry.Key))
	}
	require.Contains(t, ids, redeemButtonID(redeemVendorList))
}

func TestRewardButtonStyle(t *testing.T) {
	entry := database.FixedCatalog[0]
	require.Equal(t, discordgo.PrimaryButton, rewardButton(entry, entry.Cost).Style)
	require.Equal(t, discordgo.SecondaryButton, rewardButton(entry, entry.Cost-1).Style)
	require.LessOrEqual(t, len([]rune(rewardButton(entry, 0).Label)), 80)
}

func TestParseUserRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"123456789012345678", "123456789012345678", true},
		{"<@123456789012345678>", "123456789012345678", true},
		{"<@!123456789012345678>", "123456789012345678", true},
		{" 42 ", "42", true},
		{"@someone", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := parseUserRef(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}

func TestStatusBadgeAndLabels(t *testing.T) {
	require.Equal(t, "⏳ Pending", statusBadge(database.StatusPending))
	require.Equal(t, "Shipped", statusBadge("Shipped"))
	require.Equal(t, "Daily bonus", reasonLabel(database.ReasonDaily))
	require.Equal(t, "⭐ Review", kindLabel(database.KindReview))
	require.Equal(t, "⭐⭐⭐", stars(3))
}

func TestMenuChannelMatchesCommands(t *testing.T) {
	b := &Bot{channels: config.Channels{
		Tier:       "tier-chan",
		Suggestion: "suggest-chan",
		Membership: "member-chan",
	}}

	tests := []struct {
		action string
		want   string
	}{
		{menuTier, "tier-chan"},
		{menuSuggestion, "suggest-chan"},
		{menuApply, "member-chan"},
		{menuDaily, ""},
		{menuComplaint, ""},
		{menuAdminViewOrders, ""},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			configured, _ := b.menuChannel(tt.action)
			require.Equal(t, tt.want, configured)
		})
	}

	// A restricted button pressed elsewhere is denied like its command
	configured, name := b.menuChannel(menuSuggestion)
	require.NotEmpty(t, channelDenial(configured, "general", name))
	require.Empty(t, channelDenial(configured, "suggest-chan", name))
}
