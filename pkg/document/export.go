package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/panelkit/panelkit/pkg/layout"
)

// WriteJSON encodes a layout tree as a JSON document and writes it to w.
// The output includes every panel with its sizing rules, margins, child
// layout settings, and ordered child list, plus the tree's solved flag.
// This format can be re-imported with [ReadJSON] for round-trip
// processing; resolved geometry is recomputed on import rather than
// stored.
func WriteJSON(l *layout.Layout, w io.Writer) error {
	doc := treeDocument{
		Namespace:    Namespace,
		Solved:       l.Solved(),
		PlotElements: make(map[string]plotEntry, l.Len()),
	}

	for _, id := range l.IDs() {
		p, err := l.Panel(id)
		if err != nil {
			return fmt.Errorf("panel %s: %w", id, err)
		}
		parent, err := l.Parent(id)
		if err != nil {
			return fmt.Errorf("panel %s: %w", id, err)
		}
		children, err := l.Children(id)
		if err != nil {
			return fmt.Errorf("panel %s: %w", id, err)
		}
		doc.PlotElements[id] = plotEntry{
			WidthConstraint:      encodeRule(p.Width),
			HeightConstraint:     encodeRule(p.Height),
			MarginLeft:           p.MarginLeft,
			MarginRight:          p.MarginRight,
			MarginTop:            p.MarginTop,
			MarginBottom:         p.MarginBottom,
			ChildLayoutDirection: p.Direction.String(),
			ChildPadding:         p.Padding,
			Label:                id,
			ParentID:             parent,
			ChildLabels:          children,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a layout tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(l *layout.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(l, f)
}
