// Package rope provides an immutable rope for storing editable text.
//
// The rope is a B+ tree: leaves hold bounded UTF-8 chunks and internal nodes
// cache the aggregated metrics of their children (bytes, runes, newlines).
// Every lookup used by an editor on each keystroke descends the tree once:
//
//   - rune offset to byte offset and back
//   - line number to byte offset of the line start
//   - byte offset to line number
//
// Insert and Delete copy only the path from the root to the edited leaves,
// so an edit costs O(log n) and earlier Rope values stay valid.
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")  // "hello, world"
//	r = r.Delete(0, 7)    // "world"
//
// Offsets passed to Insert and Delete are byte offsets and must fall on
// UTF-8 boundaries. Use CharToByte to translate rune offsets.
package rope
