package domain

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

// Hidden ng words are base64 encoded at rest. This only keeps offensive terms
// from being read at a glance in the filters file, it is not a secret.

// EncodeHidden obfuscates a hidden ng word for storage.
func EncodeHidden(word string) string {
	return base64.StdEncoding.EncodeToString([]byte(word))
}

// DecodeHidden reverses EncodeHidden. Malformed entries return an error
// wrapping errors.ErrDecode.
func DecodeHidden(entry string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(entry)
	if err != nil {
		return "", oops.Code(errors.CodeDecode).Wrap(fmt.Errorf("%w: %w", errors.ErrDecode, err))
	}
	if !utf8.Valid(raw) {
		return "", oops.Code(errors.CodeDecode).Wrap(fmt.Errorf("%w: decoded bytes are not utf-8", errors.ErrDecode))
	}
	return string(raw), nil
}
