package bot

import (
	"context"
	"sync"
	"time"

	"sweetholes/internal/logging"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

const notifyTimeout = 10 * time.Second

// embedSender is the part of *discordgo.Session the notifier needs
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts staff and community embeds in the background. Callers send
// only after their transaction has committed, so a failed post never undoes
// a state change.
type Notifier struct {
	sender  embedSender
	limiter *rate.Limiter
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewNotifier(sender embedSender) *Notifier {
	return &Notifier{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		timeout: notifyTimeout,
	}
}

// Send posts embed to channelID without blocking. An empty channel ID is a
// no-op.
func (n *Notifier) Send(channelID string, embed *discordgo.MessageEmbed) {
	if channelID == "" || embed == nil {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.limiter.Wait(ctx); err != nil {
			logging.Warn(logging.ComponentNotify, "Dropped notification for %s: %v", channelID, err)
			return
		}
		if _, err := n.sender.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx)); err != nil {
			logging.Error(logging.ComponentNotify, "Failed to notify channel %s: %v", channelID, err)
			return
		}
		logging.Debug(logging.ComponentNotify, "Posted %q to %s", embed.Title, channelID)
	}()
}

// Wait blocks until in-flight notifications finish
func (n *Notifier) Wait() {
	n.wg.Wait()
}
