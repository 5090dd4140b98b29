package domain

import "time"

// ChannelMeta is the fixed channel-level header of the document
type ChannelMeta struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// Item is one feed entry derived from one kept chat message.
// Title and Link hold plain text; Description is an HTML fragment whose
// user-supplied parts are already escaped. XML escaping happens on render.
type Item struct {
	Title       string
	Link        string
	Description string
	PublishedAt time.Time
}
