package errors

import "errors"

// Error codes attached with oops.Code so log lines can be grouped by failure class.
const (
	CodeConfig      = "config_error"
	CodeDecode      = "decode_error"
	CodeFetch       = "fetch_error"
	CodeEmptyResult = "empty_result"
	CodePublishCopy = "publish_copy_error"
)

var (
	ErrConfig          = errors.New("configuration record is missing or malformed")
	ErrDecode          = errors.New("malformed hidden ng word entry")
	ErrFetch           = errors.New("remote fetch failed")
	ErrEmptyResult     = errors.New("no content produced")
	ErrPublishCopy     = errors.New("failed to copy document to publish directory")
	ErrMissingAPIKey   = errors.New("API_KEY environment variable is required")
	ErrChannelNotFound = errors.New("channel not found")
	ErrInvalidNGMode   = errors.New("invalid ng word mode")
	ErrEmptyNGWord     = errors.New("ng word must not be empty")
	ErrNGWordExists    = errors.New("ng word already registered")
	ErrNGWordNotFound  = errors.New("ng word not registered")
)
