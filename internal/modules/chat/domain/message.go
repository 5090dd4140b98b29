package domain

// ChatMessage is one chat record from the chat source. The video fields are
// attached by the fetch run; the chat source never sets them.
type ChatMessage struct {
	ID            string  `json:"message_id,omitempty"`
	Text          string  `json:"message"`
	TimeInSeconds float64 `json:"time_in_seconds"`
	Author        *Author `json:"author,omitempty"`

	VideoID          string `json:"videoId,omitempty"`
	VideoTitle       string `json:"videoTitle,omitempty"`
	VideoPublishedAt string `json:"videoPublishedAt,omitempty"`
}

// Author is the chat author as reported by the chat source.
type Author struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// OffsetSeconds is the whole-second position within the video. Messages sent
// before the stream started carry negative times and are clamped to 0.
func (m ChatMessage) OffsetSeconds() int {
	s := int(m.TimeInSeconds)
	if s < 0 {
		return 0
	}
	return s
}

// WithVideo returns a copy of m enriched with its source video.
func (m ChatMessage) WithVideo(id, title, publishedAt string) ChatMessage {
	m.VideoID = id
	m.VideoTitle = title
	m.VideoPublishedAt = publishedAt
	return m
}
