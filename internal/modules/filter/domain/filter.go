package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// Record is the filter configuration as stored on disk. Hidden ng words stay
// encoded here; they are only decoded into a FilterConfig.
type Record struct {
	Keywords []string `json:"keywords"`
	NGWords  NGWords  `json:"ng_words"`
	Labels   Labels   `json:"labels"`
}

// NGWords keeps the two ng tiers apart at rest so monitor words can be
// audited without decoding the hidden ones.
type NGWords struct {
	Hidden  []string `json:"hidden"`
	Monitor []string `json:"monitor"`
}

// FilterConfig is the decoded, read-only configuration used for one run.
type FilterConfig struct {
	Keywords       []string
	NGWordsHidden  []string
	NGWordsMonitor []string
	Labels         Labels
}

// NGWords returns the effective ng set: hidden followed by monitor.
func (c *FilterConfig) NGWords() []string {
	words := make([]string, 0, len(c.NGWordsHidden)+len(c.NGWordsMonitor))
	words = append(words, c.NGWordsHidden...)
	return append(words, c.NGWordsMonitor...)
}

// Label maps a trigger substring to the label shown in feed titles.
type Label struct {
	Trigger string
	Name    string
}

// Labels is an ordered trigger -> label mapping. It round-trips through a JSON
// object without losing key order, which decides label order in titles.
type Labels []Label

func (l Labels) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label.Trigger)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(label.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *Labels) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("labels: expected object, got %v", tok)
	}

	labels := Labels{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var name string
		if err := dec.Decode(&name); err != nil {
			return fmt.Errorf("labels: value for %q: %w", key, err)
		}

		// a repeated key keeps its first position but takes the last value
		if idx := lo.IndexOf(labels.Triggers(), key); idx >= 0 {
			labels[idx].Name = name
			continue
		}
		labels = append(labels, Label{Trigger: key, Name: name})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = labels
	return nil
}

// Triggers lists trigger substrings in order.
func (l Labels) Triggers() []string {
	return lo.Map(l, func(label Label, _ int) string { return label.Trigger })
}
