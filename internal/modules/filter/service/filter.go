package service

import (
	"strings"

	"github.com/samber/lo"

	chatDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
)

// Filter returns the messages that contain at least one keyword and no ng
// word, in input order. Matching is plain case-sensitive substring search on
// purpose: an ng word like "草原" must still knock out a message kept for "草".
func Filter(messages []chatDomain.ChatMessage, cfg *domain.FilterConfig) []chatDomain.ChatMessage {
	ngWords := cfg.NGWords()
	return lo.Filter(messages, func(msg chatDomain.ChatMessage, _ int) bool {
		return keep(msg.Text, cfg.Keywords, ngWords)
	})
}

// Keep reports whether a single text passes the filter.
func Keep(text string, cfg *domain.FilterConfig) bool {
	return keep(text, cfg.Keywords, cfg.NGWords())
}

func keep(text string, keywords, ngWords []string) bool {
	if text == "" {
		return false
	}
	if !containsAny(text, keywords) {
		return false
	}
	// ng check runs after the keyword match and overrides it
	return !containsAny(text, ngWords)
}

func containsAny(text string, words []string) bool {
	return lo.SomeBy(words, func(word string) bool {
		return strings.Contains(text, word)
	})
}
