package service

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
)

const (
	// LongMessageFlag marks messages at or above the length threshold.
	LongMessageFlag = "長文"

	DefaultLongMessageThreshold = 20
)

// Labeler computes the title flags for a message.
type Labeler struct {
	labels    domain.Labels
	threshold int
}

// NewLabeler creates a labeler. threshold is in characters; values <= 0 use the default.
func NewLabeler(labels domain.Labels, threshold int) *Labeler {
	if threshold <= 0 {
		threshold = DefaultLongMessageThreshold
	}
	return &Labeler{labels: labels, threshold: threshold}
}

// Flags returns the long-message flag (if any) followed by every label whose
// trigger occurs in text, in mapping order, each label at most once.
func (l *Labeler) Flags(text string) []string {
	flags := []string{}
	if utf8.RuneCountInString(text) >= l.threshold {
		flags = append(flags, LongMessageFlag)
	}
	for _, label := range l.labels {
		if strings.Contains(text, label.Trigger) && !lo.Contains(flags, label.Name) {
			flags = append(flags, label.Name)
		}
	}
	return flags
}

// Prefix renders flags as a title prefix: "a b: ", or "" without flags.
func Prefix(flags []string) string {
	if len(flags) == 0 {
		return ""
	}
	return strings.Join(flags, " ") + ": "
}
