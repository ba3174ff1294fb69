package workflows

import (
	"strings"

	"github.com/PolarWolf314/tdmigrate/internal/scheme"
)

// TagInfo describes one known record tag.
type TagInfo struct {
	Tag       scheme.Tag `json:"name"`
	Value     uint32     `json:"value"`
	Discarded bool       `json:"discarded"`
}

// ListTags returns every known tag in ascending order. A non-empty filter
// keeps the tags whose name contains it (case-insensitive).
func ListTags(filter string) []TagInfo {
	filter = strings.ToLower(filter)

	var tags []TagInfo
	for _, tag := range scheme.AllTags() {
		if filter != "" && !strings.Contains(strings.ToLower(tag.String()), filter) {
			continue
		}
		tags = append(tags, TagInfo{
			Tag:       tag,
			Value:     uint32(tag),
			Discarded: tag.Discarded(),
		})
	}
	return tags
}
