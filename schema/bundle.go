package schema

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/edl/lang"
)

// RenderBundle renders a bundle as a YAML document: one entry per root
// element, keyed by its canonical path, in bundle order.
func RenderBundle(b *lang.Bundle) ([]byte, error) {
	entries := make([]yaml.MapSlice, 0, b.Len())

	for _, entry := range b.Entries {
		e, ok := entry.Object.(*Element)
		if !ok {
			return nil, fmt.Errorf(
				"bundle entry '%s' holds a %T, not a schema element",
				entry.Path, entry.Object)
		}

		entries = append(entries, yaml.MapSlice{
			{Key: "path", Value: entry.Path},
			{Key: "element", Value: e.Snapshot()},
		})
	}

	return yaml.Marshal(yaml.MapSlice{
		{Key: "entries", Value: entries},
	})
}
