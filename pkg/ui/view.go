package ui

import "github.com/PuerkitoBio/goquery"

// ApplyBot points the assistant profile and the chat headers at bot and
// returns its avatar id. Pages without a profile are left unchanged.
func ApplyBot(p *Page, bot string) string {
	avatarID := AvatarFor(bot)
	if p.Profile == nil {
		return avatarID
	}

	p.Profile.Name = bot
	p.Profile.Avatar = avatarID

	header := p.Find(SelectorInputHeader)
	if header.Exists() {
		header.Find(selectorHeaderAvatar).SetID(avatarID)
		header.Find(selectorHeaderModelName).SetText(bot)
	}
	p.Find(SelectorChatbotName).SetText(bot)
	p.Find(SelectorChatbotAvatar).SetID(avatarID)

	return avatarID
}

// ShowChatInterface hides the landing panels and shows the chat view and
// its input bar.
func ShowChatInterface(p *Page) {
	p.Find(SelectorMainGrid).SetStyle("display", "none")
	p.Find(SelectorShowcase).SetStyle("display", "none")
	p.Find(SelectorInterface).SetStyle("display", "flex")
	p.Find(SelectorBottomBar).SetStyle("display", "block")
}

// MarkActive moves the active highlight to row.
func MarkActive(p *Page, row *Element) {
	p.doc.Find(SelectorSessionItem).RemoveClass(classActive)
	row.AddClass(classActive)
}

// ActiveSessionID returns the session id of the highlighted row, if any.
func ActiveSessionID(p *Page) string {
	return NewElement(p.doc.Find(SelectorSessionItem + "." + classActive)).Attr(sessionIDAttr)
}

// SessionRow returns the sidebar row of a session.
func SessionRow(p *Page, sessionID string) *Element {
	return NewElement(p.doc.Find(SelectorSessionItem).FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr(sessionIDAttr)
		return id == sessionID
	}))
}
