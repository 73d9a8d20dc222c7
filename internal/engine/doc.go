// Package engine provides the editing core used by each open tab.
//
// An Engine owns one document (a buffer.Sequence), one cursor and one
// vertical scroll offset. Every editing and movement operation is total:
// out-of-range cursors are clamped and impossible edits are no-ops, so the
// keystroke path never returns errors. Only Open, Save, SaveAs and Reload
// touch storage and return its errors unchanged.
//
// # Sub-packages
//
//   - rope: B+ tree rope with rune and newline metrics
//   - buffer: the Sequence contract and its rope and line-slice implementations
//   - cursor: (line, column) positions, clamping and movement
//   - viewport: minimal-scroll window tracking
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("ab\ncd"))
//	e.MoveDown()
//	e.InsertChar('x')        // "ab\nxcd", cursor at 1:1
//	e.UpdateScroll(24)       // keep the cursor inside a 24-line window
//
//	e, err := engine.Open(storage.NewOSStorage(), "notes.txt")
//	if err != nil {
//		return err
//	}
//	defer e.Save()
//
// # Thread Safety
//
// An Engine is not safe for concurrent use. The owner (a tab) must
// serialise access.
package engine
