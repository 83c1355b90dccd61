// Package content defines the items listed by the portfolio feeds.
package content

import (
	"bytes"
	"encoding/json"
)

// Feed locations, relative to the site root.
const (
	ProjectsPath = "content/projects.json"
	BlogsPath    = "content/blogs.json"
	BlogsDir     = "content/blogs"
)

// Optional is a string field that may be absent from a feed entry.
// Null, missing and non-string JSON values all decode to the empty string
// so that a sloppy hand-written entry never fails the whole feed.
type Optional string

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		*o = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*o = ""
		return nil
	}
	*o = Optional(s)
	return nil
}

// String returns the raw value.
func (o Optional) String() string { return string(o) }

// Present reports whether the field carries a non-empty value.
func (o Optional) Present() bool { return o != "" }

// Project is one entry of the project feed.
type Project struct {
	Title       string   `json:"title"`
	Description Optional `json:"description"`
	ImageURL    Optional `json:"imageUrl"`
	GithubURL   Optional `json:"githubUrl"`
	LiveURL     Optional `json:"liveUrl"`
}

// BlogSummary is one entry of the blog feed. Date is a display string.
type BlogSummary struct {
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Summary  string   `json:"summary"`
	ImageURL Optional `json:"imageUrl"`
	File     string   `json:"file"`
}
