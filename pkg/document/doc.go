// Package document provides JSON import and export for panel layout trees.
//
// # Overview
//
// This package serializes a [layout.Layout] to and from a JSON document.
// The format is designed for:
//
//   - Persisting figure layouts alongside the plotting scripts that use them
//   - Integration with external tools that produce or consume panel trees
//   - Caching of solved layouts for faster re-rendering
//   - Round-trip preservation: import, mutate, export, and re-import
//
// # Document Format
//
// A document carries a reserved namespace marker, the tree's solved flag,
// and a "plotElements" map keyed by panel id:
//
//	{
//	  "namespace": "panelkit/layout",
//	  "solved": true,
//	  "plotElements": {
//	    "base": {
//	      "widthConstraint": {"constraint": "fixed", "size": 10},
//	      "heightConstraint": {"constraint": "fromChildren"},
//	      "marginLeft": 0.5, "marginRight": 0.5,
//	      "marginTop": 0.5, "marginBottom": 0.5,
//	      "childLayoutDirection": "vertical",
//	      "childPadding": 0.1,
//	      "label": "base", "parentId": "",
//	      "childLabels": ["top", "bottom"]
//	    },
//	    ...
//	  }
//	}
//
// Sizing rules use a tagged-union form: the "constraint" tag is one of
// "fixed", "fixedAspect", "fromChildren", "fromParent", "fill" or
// "named", with "size", "aspect" or "id" carrying the tag's parameter.
//
// # Round Trips
//
// Resolved geometry is never stored. [ReadJSON] rebuilds the tree by
// replaying the insertions recorded in each panel's "childLabels", then
// solves it, so a decoded tree reproduces the original's geometry
// numerically rather than byte-for-byte.
//
// # Errors
//
// Structural problems surface as [ErrInvalidDocument], absent fields as
// [ErrMissingField], and unrecognized rule tags as
// [ErrUnknownConstraint], each wrapped with the panel and field
// involved.
package document
