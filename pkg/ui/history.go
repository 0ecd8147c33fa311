package ui

import (
	"strings"

	"github.com/harun/articuno/pkg/sessionapi"
)

const imageAlt = "Uploaded image"

// AddUserMessage appends a user entry, with its image when present.
func AddUserMessage(container *Element, text string, image *sessionapi.ImageData) {
	content := newNode("div", attr("class", "message-content"))
	if src := imageSource(image); src != "" {
		content.AppendChild(newNode("img",
			attr("class", "message-image"),
			attr("src", src),
			attr("alt", imageAlt),
		))
	}
	content.AppendChild(appendChildren(
		newNode("div", attr("class", "message-text")),
		textNode(text),
	))

	container.Append(appendChildren(
		newNode("div", attr("class", "message user-message")),
		content,
	))
}

// AddAIMessage appends an assistant entry.
func AddAIMessage(container *Element, text string) {
	container.Append(appendChildren(
		newNode("div", attr("class", "message ai-message")),
		appendChildren(
			newNode("div", attr("class", "message-content")),
			appendChildren(newNode("div", attr("class", "message-text")), textNode(text)),
		),
	))
}

// RenderHistory replaces the container content with history and scrolls it
// to the bottom. User entries with a paired reply render two elements and
// entries with other roles are skipped. It returns len(history), or 0 when
// container is not in the page.
func RenderHistory(container *Element, history []sessionapi.Message) int {
	if !container.Exists() {
		return 0
	}
	container.Clear()

	for _, msg := range history {
		switch msg.Role {
		case sessionapi.RoleUser:
			AddUserMessage(container, msg.Message, msg.ImageData)
			if msg.HasResponse() {
				AddAIMessage(container, *msg.Response)
			}
		case sessionapi.RoleAssistant:
			AddAIMessage(container, msg.Message)
		}
	}

	container.ScrollToBottom()
	return len(history)
}

// imageSource accepts only inline image data URLs.
func imageSource(image *sessionapi.ImageData) string {
	if image == nil {
		return ""
	}
	if !strings.HasPrefix(image.Data, "data:image/") {
		return ""
	}
	return image.Data
}
