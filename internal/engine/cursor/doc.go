// Package cursor models the logical editing position in a document.
//
// A Cursor is an immutable (line, column) value. Column counts characters
// from the start of the line. Every operation first clamps the cursor into
// the document, so a cursor left stale by an edit elsewhere is still usable:
//
//	c := cursor.New(10, 40).Clamp(doc) // snapped to the nearest valid position
//	c = c.Down(doc).Right(doc)
//	offset := c.CharIndex(doc)
//
// The last valid column of a line that ends in a newline is the newline
// itself, which is where typed text is appended. The final line has no
// terminator; its last valid column is its length, the end of the document.
//
// Vertical movement does not remember a preferred column: moving through a
// short line snaps the column left for good.
package cursor
