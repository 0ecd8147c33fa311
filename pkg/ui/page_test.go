package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	p := NewPage()

	require.NotNil(t, p.Profile)
	assert.Equal(t, "Articuno.AI", p.Profile.Name)
	assert.Equal(t, DefaultAvatar, p.Profile.Avatar)

	for _, sel := range []string{
		SelectorSessionsList, SelectorChatHistory, SelectorMainGrid, SelectorShowcase,
		SelectorInterface, SelectorBottomBar, SelectorInputHeader, SelectorChatbotName,
		SelectorChatbotAvatar,
	} {
		assert.True(t, p.Find(sel).Exists(), sel)
	}
	assert.Equal(t, "none", p.Find(SelectorInterface).Style("display"))
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage(strings.NewReader(`<html><body><div id="chatbot-chat-history"></div></body></html>`))
	require.NoError(t, err)

	assert.Nil(t, p.Profile)
	assert.True(t, p.ChatHistory().Exists())
	assert.False(t, p.SessionsList().Exists())
}

func TestElement(t *testing.T) {
	t.Run("missing element is a no-op", func(t *testing.T) {
		p := NewPage()
		el := p.Find("#does-not-exist")

		assert.False(t, el.Exists())
		el.SetText("x")
		el.SetID("y")
		el.SetStyle("display", "none")
		el.AddClass("active")
		el.Clear()
		el.ScrollToBottom()
		assert.Equal(t, "", el.Text())
		assert.Equal(t, 0, el.Children())
		out, err := el.OuterHTML()
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("style keeps other properties", func(t *testing.T) {
		p, err := ParsePage(strings.NewReader(`<div id="box" style="color: red; display: none"></div>`))
		require.NoError(t, err)
		box := p.Find("#box")

		box.SetStyle("display", "flex")
		box.SetStyle("margin", "0")

		assert.Equal(t, "flex", box.Style("display"))
		assert.Equal(t, "red", box.Style("color"))
		assert.Equal(t, "color: red; display: flex; margin: 0", box.Attr("style"))
	})

	t.Run("text is escaped", func(t *testing.T) {
		p := NewPage()
		h := p.ChatHistory()

		AddAIMessage(h, "<script>alert(1)</script>")

		out, err := h.OuterHTML()
		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
		assert.Equal(t, 0, h.Find("script").Children())
		assert.False(t, h.Find("script").Exists())
	})
}
