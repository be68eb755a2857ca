package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ContentID uniquely identifies a content item.
type ContentID string

// UnmarshalJSON accepts both string ids and the numeric, time-based ids
// written by older sessions. null decodes as an empty id.
func (id *ContentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ContentID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("content id must be a string or number: %w", err)
	}
	*id = ContentID(n.String())
	return nil
}

// ContentItem is a single content asset in the library.
type ContentItem struct {
	ID    ContentID `json:"id"`
	Title string    `json:"title"`
	Type  string    `json:"type"`
	Stage StageKey  `json:"stage"`
}

// IsAssigned reports whether the item belongs to a funnel stage.
func (c ContentItem) IsAssigned() bool {
	return c.Stage.IsAssigned()
}

// ContentTypes lists the content-type labels offered by default.
// The set is open: any non-empty label is accepted.
var ContentTypes = []string{
	"Blog Post",
	"Video",
	"Case Study",
	"Podcast",
	"Email",
	"Social Post",
	"Webinar",
	"Guide",
}
