package cursor

// Movement functions return the moved cursor and never fail. At a document
// boundary they return the clamped input unchanged.

// Left moves one character back, wrapping to the end of the previous line.
func (c Cursor) Left(doc Document) Cursor {
	c = c.Clamp(doc)
	if c.Column > 0 {
		c.Column--
		return c
	}
	if c.Line > 0 {
		c.Line--
		c.Column = LastColumn(doc, c.Line)
	}
	return c
}

// Right moves one character forward, wrapping to the start of the next line.
func (c Cursor) Right(doc Document) Cursor {
	c = c.Clamp(doc)
	if c.Column < LastColumn(doc, c.Line) {
		c.Column++
		return c
	}
	if c.Line < doc.LenLines()-1 {
		c.Line++
		c.Column = 0
	}
	return c
}

// Up moves to the previous line, snapping the column to its length.
func (c Cursor) Up(doc Document) Cursor {
	c = c.Clamp(doc)
	if c.Line == 0 {
		return c
	}
	c.Line--
	c.Column = ClampColumn(doc, c.Line, c.Column)
	return c
}

// Down moves to the next line, snapping the column to its length.
func (c Cursor) Down(doc Document) Cursor {
	c = c.Clamp(doc)
	if c.Line >= doc.LenLines()-1 {
		return c
	}
	c.Line++
	c.Column = ClampColumn(doc, c.Line, c.Column)
	return c
}
