package bot

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeSender struct {
	mu    sync.Mutex
	sent  []string
	times []time.Time
	err   error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, channelID+"|"+embed.Title)
	f.times = append(f.times, time.Now())
	return &discordgo.Message{ChannelID: channelID}, f.err
}

func TestNotifierSends(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender)

	n.Send("staff", &discordgo.MessageEmbed{Title: "🔔 New Order!"})
	n.Send("", &discordgo.MessageEmbed{Title: "ignored"})
	n.Send("staff", nil)
	n.Wait()

	require.Equal(t, []string{"staff|🔔 New Order!"}, sender.sent)
}

func TestNotifierSendFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("missing access")}
	n := NewNotifier(sender)

	n.Send("staff", &discordgo.MessageEmbed{Title: "x"})
	n.Wait()

	require.Len(t, sender.sent, 1)
}

func TestNotifierThrottles(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender)
	n.limiter = rate.NewLimiter(rate.Limit(20), 2)

	start := time.Now()
	for k := 0; k < 6; k++ {
		n.Send("staff", &discordgo.MessageEmbed{Title: "burst"})
	}
	n.Wait()

	require.Len(t, sender.sent, 6)
	// Two go out immediately, the remaining four wait 50ms each
	require.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestNotifierTimeoutDrops(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender)
	n.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)
	n.timeout = 20 * time.Millisecond

	n.Send("staff", &discordgo.MessageEmbed{Title: "first"})
	n.Send("staff", &discordgo.MessageEmbed{Title: "second"})
	n.Wait()

	require.Len(t, sender.sent, 1)
}
