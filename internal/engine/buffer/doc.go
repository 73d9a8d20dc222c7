// Package buffer provides character-addressed text sequences for the editor
// engine.
//
// A Sequence stores a document and answers line-indexed queries in terms of
// character (rune) offsets. Two implementations are provided:
//
//   - Buffer, backed by a rope. Edits and lookups are O(log n).
//   - Lines, a slice of lines. Simple and adequate for small documents.
//
// Both implement the same total API: out-of-range arguments are clamped or
// ignored instead of reported, so callers never handle boundary errors on
// the keystroke path.
//
//	seq := buffer.NewBufferFromString("ab\ncd")
//	seq.Insert(2, "X")    // "abX\ncd"
//	seq.Line(0)           // "abX\n"
//	seq.LineToChar(1)     // 4
//
// The only line terminator is '\n'. A trailing newline starts an empty final
// line, so "ab\n" has two lines.
package buffer
