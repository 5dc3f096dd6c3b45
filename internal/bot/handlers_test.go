package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestModalValues(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: modalFormID(formVendorAdd),
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "name", Value: "  Sprinkle Box "},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "cost", Value: "320"},
			}},
		},
	}

	values := modalValues(data)
	require.Equal(t, map[string]string{"name": "Sprinkle Box", "cost": "320"}, values)
}

func TestButtonRows(t *testing.T) {
	buttons := make([]discordgo.Button, 12)
	rows := buttonRows(buttons)
	require.Len(t, rows, 3)
	require.Len(t, rows[0].(discordgo.ActionsRow).Components, 5)
	require.Len(t, rows[2].(discordgo.ActionsRow).Components, 2)

	require.Empty(t, buttonRows(nil))
}

func TestGetUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "member"}},
	}}
	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "dm-user"},
	}}

	require.Equal(t, "member", getUserID(guild))
	require.Equal(t, "dm-user", getUserID(dm))
}

func TestFormatAge(t *testing.T) {
	require.Equal(t, "just now", formatAge(10*time.Second))
	require.Equal(t, "5m ago", formatAge(5*time.Minute))
	require.Equal(t, "3h ago", formatAge(3*time.Hour))
	require.Equal(t, "2d ago", formatAge(50*time.Hour))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
