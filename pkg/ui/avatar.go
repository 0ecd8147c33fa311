package ui

// DefaultAvatar is used for bots missing from the avatar table.
const DefaultAvatar = "Articuno-avatar"

var botAvatars = map[string]string{
	"Articuno.AI":          "Articuno-avatar",
	"Wikipedia DeepSearch": "wikipedia-avatar",
	"Codestral 2501":       "codestral-2501-avatar",
	"DeepSeek R1":          "DeepSeek-avatar",
	"DeepSeek V3":          "DeepSeek-V3-avatar",
	"Gemini 2.0 Flash":     "gemini-avatar",
	"Gemini 2.5 Flash":     "gemini-25-avatar",
	"GPT-4o":               "gpt-4o-avatar",
	"GPT-4o-mini":          "gpt-4o-mini-avatar",
	"Grok-3":               "grok3-avatar",
	"Grok-3 Mini":          "grok3-mini-avatar",
	"Ministral 3B":         "ministral-3b-avatar",
}

// AvatarFor returns the avatar element id of a bot.
func AvatarFor(bot string) string {
	if id, ok := botAvatars[bot]; ok {
		return id
	}
	return DefaultAvatar
}

// KnownBots returns the bots with a dedicated avatar, in no fixed order.
func KnownBots() []string {
	bots := make([]string, 0, len(botAvatars))
	for name := range botAvatars {
		bots = append(bots, name)
	}
	return bots
}
