package docx

import (
	"encoding/xml"
	"fmt"
)

// ParseRelationships parses a relationship manifest into a mapping from
// relationship id to target path. The map is never mutated after return.
func ParseRelationships(data []byte) (map[string]string, error) {
	var manifest struct {
		Relationship []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse relationship manifest: %w", err)
	}
	rels := make(map[string]string, len(manifest.Relationship))
	for _, r := range manifest.Relationship {
		if r.ID != "" {
			rels[r.ID] = r.Target
		}
	}
	return rels, nil
}
