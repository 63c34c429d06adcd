package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/panelkit/panelkit/pkg/layout"
)

// ReadJSON decodes a layout document from r and rebuilds the panel tree.
//
// The input must carry the reserved namespace marker and a "plotElements"
// map keyed by panel id; the root entry uses the id "base" and an empty
// "parentId". Children are re-inserted in the order listed in each
// panel's "childLabels", mirroring the construction that produced the
// document, and the tree is solved before it is returned.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or the namespace marker does not match
//   - A panel or constraint entry is missing a required field
//   - A constraint tag is outside the known rule vocabulary
//   - A childLabels entry references an id with no panel entry
//   - A plotElements entry is not reachable from the root via childLabels
//   - The rebuilt tree cannot be solved
//
// Errors are wrapped with the panel id and field that caused the
// problem. Use errors.Is to check for the document error kinds or for
// the layout package's construction errors.
//
// The returned Layout is independent of r and can be modified safely
// after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...layout.Option) (*layout.Layout, error) {
	var doc treeDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Namespace != Namespace {
		return nil, fmt.Errorf("%w: namespace %q, want %q", ErrInvalidDocument, doc.Namespace, Namespace)
	}
	if doc.PlotElements == nil {
		return nil, fmt.Errorf("%w: %s: plotElements", ErrInvalidDocument, ErrMissingField)
	}

	rootEntry, ok := doc.PlotElements[layout.RootID]
	if !ok {
		return nil, fmt.Errorf("%w: no %q entry", ErrInvalidDocument, layout.RootID)
	}
	if rootEntry.ParentID != "" {
		return nil, fmt.Errorf("%w: root parentId must be empty, got %q", ErrInvalidDocument, rootEntry.ParentID)
	}

	root, err := decodePanel(layout.RootID, rootEntry)
	if err != nil {
		return nil, err
	}
	l, err := layout.New(root, opts...)
	if err != nil {
		return nil, err
	}
	if err := insertChildren(l, doc.PlotElements, layout.RootID, rootEntry.ChildLabels); err != nil {
		return nil, err
	}
	if l.Len() != len(doc.PlotElements) {
		return nil, fmt.Errorf("%w: entries not reachable from %q via childLabels: %v",
			ErrInvalidDocument, layout.RootID, orphanedEntries(l, doc.PlotElements))
	}
	if err := l.Layout(); err != nil {
		return nil, fmt.Errorf("solve decoded tree: %w", err)
	}
	return l, nil
}

// orphanedEntries lists document ids that never made it into the tree,
// sorted for stable error messages.
func orphanedEntries(l *layout.Layout, entries map[string]plotEntry) []string {
	var orphans []string
	for id := range entries {
		if _, err := l.Panel(id); err != nil {
			orphans = append(orphans, id)
		}
	}
	slices.Sort(orphans)
	return orphans
}

// insertChildren replays the original insertion order depth-first.
func insertChildren(l *layout.Layout, entries map[string]plotEntry, parentID string, labels []string) error {
	for _, label := range labels {
		entry, ok := entries[label]
		if !ok {
			return fmt.Errorf("panel %s: %w: child %q has no plotElements entry", parentID, ErrInvalidDocument, label)
		}
		p, err := decodePanel(label, entry)
		if err != nil {
			return err
		}
		if _, err := l.Insert(parentID, p); err != nil {
			return fmt.Errorf("panel %s: %w", label, err)
		}
		if err := insertChildren(l, entries, label, entry.ChildLabels); err != nil {
			return err
		}
	}
	return nil
}

// ImportJSON reads a layout document at path and returns the rebuilt,
// solved tree.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. If the file cannot be opened, or if decoding fails, ImportJSON
// returns an error describing the failure with the file path for
// context.
func ImportJSON(path string, opts ...layout.Option) (*layout.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}
