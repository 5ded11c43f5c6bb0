package spreadsheet

import "spanleaf/value"

// cellKey is the map key the Engine uses for its cache and its
// reverse-dependency index: a cell only has global meaning once it's
// paired with the sheet it lives in. Both fields are already
// comparable, so cellKey is usable directly as a Go map key.
type cellKey struct {
	Sheet value.SheetIdx
	Cell  value.CellIdx
}
