package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Video is an upload of a monitored channel.
type Video struct {
	ID    string
	Title string
	// PublishedAt is the raw ISO-8601 value from the API; it is copied onto
	// chat messages verbatim.
	PublishedAt string
	Published   time.Time
}

// WatchURL is the public watch page of a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}

// WatchURLAt is the watch page seeked to seconds.
func WatchURLAt(videoID string, seconds int) string {
	return fmt.Sprintf("%s&t=%ds", WatchURL(videoID), seconds)
}

// ThumbnailURL is the high quality thumbnail of a video.
func ThumbnailURL(videoID string) string {
	return "https://i.ytimg.com/vi/" + url.PathEscape(videoID) + "/hqdefault.jpg"
}
