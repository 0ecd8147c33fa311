package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harun/articuno/pkg/sessionapi"
	"github.com/harun/articuno/pkg/ui"
)

// sessionArg returns args[0], or the current session when no id was given.
func sessionArg(args []string, current string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if current == "" {
		return "", fmt.Errorf("no session id given and no current session")
	}
	return current, nil
}

// writeMessages prints messages one per line, paired replies indented.
func writeMessages(w io.Writer, messages []sessionapi.Message) {
	for _, msg := range messages {
		stamp := ""
		if !msg.Timestamp.IsZero() {
			stamp = msg.Timestamp.Local().Format("2006-01-02 15:04") + " "
		}

		switch msg.Role {
		case sessionapi.RoleUser:
			fmt.Fprintf(w, "%s[you] %s%s\n", stamp, oneLine(msg.Message), imageNote(msg.ImageData))
			if msg.HasResponse() {
				fmt.Fprintf(w, "  [%s] %s\n", botLabel(msg.BotName), oneLine(*msg.Response))
			}
		default:
			fmt.Fprintf(w, "%s[%s] %s\n", stamp, botLabel(msg.BotName), oneLine(msg.Message))
		}
	}
}

func botLabel(bot string) string {
	if bot == "" {
		return sessionapi.RoleAssistant
	}
	return bot
}

func imageNote(img *sessionapi.ImageData) string {
	if img == nil {
		return ""
	}
	if img.Format != "" {
		return " (image: " + img.Format + ")"
	}
	return " (image)"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// timeAgo formats t like the sidebar, or "-" when unknown.
func timeAgo(now time.Time, t sessionapi.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return ui.TimeAgo(now, t.Time)
}
