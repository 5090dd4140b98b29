package service

import (
	"reflect"
	"strings"
	"testing"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
)

func TestLabeler_Flags(t *testing.T) {
	labeler := NewLabeler(domain.Labels{
		{Trigger: "草", Name: "w"},
		{Trigger: "神", Name: "g"},
		{Trigger: "ｗ", Name: "w"},
	}, DefaultLongMessageThreshold)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"mapping order", "神草", []string{"w", "g"}},
		{"no match", "hello", []string{}},
		{"label value once", "草ｗ", []string{"w"}},
		{"long message first", strings.Repeat("あ", 24) + "草", []string{LongMessageFlag, "w"}},
		{"threshold is inclusive", strings.Repeat("a", 20), []string{LongMessageFlag}},
		{"below threshold", strings.Repeat("a", 19), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := labeler.Flags(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flags(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLabeler_CustomThreshold(t *testing.T) {
	labeler := NewLabeler(nil, 3)
	if got := labeler.Flags("abc"); !reflect.DeepEqual(got, []string{LongMessageFlag}) {
		t.Errorf("Flags() = %v", got)
	}
	if got := NewLabeler(nil, 0).Flags(strings.Repeat("a", 19)); len(got) != 0 {
		t.Errorf("default threshold Flags() = %v", got)
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		flags []string
		want  string
	}{
		{nil, ""},
		{[]string{"w"}, "w: "},
		{[]string{LongMessageFlag, "w", "g"}, "長文 w g: "},
	}
	for _, tt := range tests {
		if got := Prefix(tt.flags); got != tt.want {
			t.Errorf("Prefix(%v) = %q, want %q", tt.flags, got, tt.want)
		}
	}
}
