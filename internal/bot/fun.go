package bot

import "math/rand/v2"

var pickupLines = []string{
	"Are you a donut? Because I'm totally glazed over you. 😉",
	"If sweetness was a crime, you'd be doing life, sugar. 😘",
	"Are you on the menu? Because I'd order you every time. 😏",
	"Do you have a map? I keep getting lost in your eyes. 🗺️",
	"Are you a magician? Because every time I look at you, everyone else disappears. 💫",
	"Are you a camera? Because every time I look at you, I smile. 📷",
	"Do you have a name? Or can I call you mine? 🤔",
	"Are you a fresh batch? Because you're looking hot right out of the oven. 🔥",
	"You must be a cream hole, because you fill me with joy. 🍩",
	"Is your name Sprinkles? Because you make everything sweeter. ✨",
}

var truthQuestions = []string{
	"What's the sweetest thing someone has done for you? 🍯",
	"What's your biggest guilty pleasure? (Besides me, obviously.) 😉",
	"What's the most embarrassing thing you've ever done? 😬",
	"What's the most childish thing you still do? 😜",
	"What's the most embarrassing thing you've ever done in front of your crush? 😳",
}

var dareTasks = []string{
	"Send a 💋 emoji to the last person who ordered a donut. 😘",
	"Change your name to 'Sugar Daddy/Mommy' for 10 minutes. 🔥",
	"Send a 🍕 emoji to the last person who ordered a pizza. 🍕",
	"Change your name to 'Sweetie' for 10 minutes. 💖",
	"Send a 🍦 emoji to the last person who ordered a cupcake. 🍦",
}

// pick returns a random line, or "" for an empty list
func pick(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[rand.IntN(len(lines))]
}

func pickupMessage() string { return "💋 **Sweet Holes Flirty Line:** " + pick(pickupLines) }
func truthMessage() string  { return "💖 **Truth:** " + pick(truthQuestions) }
func dareMessage() string   { return "🔥 **Dare:** " + pick(dareTasks) }

// activityPoints is the passive reward for one chat message
func activityPoints() int {
	return 1 + rand.IntN(3)
}
