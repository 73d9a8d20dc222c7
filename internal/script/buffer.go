package script

import (
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ropepad/internal/engine"
)

// bufferModule implements the buf table.
type bufferModule struct {
	eng *engine.Engine
}

func newBufferModule(eng *engine.Engine) *bufferModule {
	return &bufferModule{eng: eng}
}

func (m *bufferModule) register(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "insert_char", L.NewFunction(m.insertChar))
	L.SetField(mod, "insert_text", L.NewFunction(m.insertText))
	L.SetField(mod, "delete", L.NewFunction(m.delete))
	L.SetField(mod, "backspace", L.NewFunction(m.backspace))
	L.SetField(mod, "up", L.NewFunction(m.repeat(m.eng.MoveUp)))
	L.SetField(mod, "down", L.NewFunction(m.repeat(m.eng.MoveDown)))
	L.SetField(mod, "left", L.NewFunction(m.repeat(m.eng.MoveLeft)))
	L.SetField(mod, "right", L.NewFunction(m.repeat(m.eng.MoveRight)))
	L.SetField(mod, "cursor", L.NewFunction(m.cursor))
	L.SetField(mod, "set_cursor", L.NewFunction(m.setCursor))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetField(mod, "len", L.NewFunction(m.bufLen))
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "modified", L.NewFunction(m.modified))
	L.SetField(mod, "file_name", L.NewFunction(m.fileName))
	L.SetField(mod, "path", L.NewFunction(m.path))
	L.SetField(mod, "save", L.NewFunction(m.save))
	L.SetField(mod, "save_as", L.NewFunction(m.saveAs))

	L.SetGlobal("buf", mod)
}

// insert_char(c)
// Inserts a single character and moves past it.
func (m *bufferModule) insertChar(L *lua.LState) int {
	s := L.CheckString(1)
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) {
		L.ArgError(1, "expected exactly one character")
		return 0
	}
	m.eng.InsertChar(r)
	return 0
}

// insert_text(s)
// Inserts s at the cursor. The cursor does not move.
func (m *bufferModule) insertText(L *lua.LState) int {
	m.eng.InsertText(L.CheckString(1))
	return 0
}

// delete()
// Deletes the character under the cursor.
func (m *bufferModule) delete(L *lua.LState) int {
	m.eng.DeleteCharForward()
	return 0
}

// backspace()
func (m *bufferModule) backspace(L *lua.LState) int {
	m.eng.Backspace()
	return 0
}

// repeat wraps a movement as a function taking an optional count.
// Counts beyond the document size are cut down, since further moves do
// nothing.
func (m *bufferModule) repeat(move func()) lua.LGFunction {
	return func(L *lua.LState) int {
		n := L.OptInt(1, 1)
		if n < 0 {
			L.ArgError(1, "count must be non-negative")
			return 0
		}
		n = min(n, m.eng.Len()+m.eng.LineCount())
		ctx := L.Context()
		for i := range n {
			if ctx != nil && i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					L.RaiseError("%v", err)
					return 0
				}
			}
			move()
		}
		return 0
	}
}

// cursor() -> line, column
func (m *bufferModule) cursor(L *lua.LState) int {
	c := m.eng.Cursor()
	L.Push(lua.LNumber(c.Line))
	L.Push(lua.LNumber(c.Column))
	return 2
}

// set_cursor(line, column)
// Out-of-range positions are clamped.
func (m *bufferModule) setCursor(L *lua.LState) int {
	m.eng.SetCursor(engine.Cursor{Line: L.CheckInt(1), Column: L.CheckInt(2)})
	return 0
}

// line(i) -> string
// Returns line i including its terminator, or "" when out of range.
func (m *bufferModule) line(L *lua.LState) int {
	L.Push(lua.LString(m.eng.Line(L.CheckInt(1))))
	return 1
}

// line_count() -> number
func (m *bufferModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.eng.LineCount()))
	return 1
}

// len() -> number
// Returns the length in characters.
func (m *bufferModule) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.eng.Len()))
	return 1
}

// text() -> string
func (m *bufferModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.eng.Text()))
	return 1
}

// modified() -> bool
func (m *bufferModule) modified(L *lua.LState) int {
	L.Push(lua.LBool(m.eng.IsModified()))
	return 1
}

// file_name() -> string
func (m *bufferModule) fileName(L *lua.LState) int {
	L.Push(lua.LString(m.eng.FileName()))
	return 1
}

// path() -> string
func (m *bufferModule) path(L *lua.LState) int {
	L.Push(lua.LString(m.eng.Path()))
	return 1
}

// save()
// Raises an error if the write fails.
func (m *bufferModule) save(L *lua.LState) int {
	if err := m.eng.Save(); err != nil {
		L.RaiseError("save: %v", err)
	}
	return 0
}

// save_as(path)
func (m *bufferModule) saveAs(L *lua.LState) int {
	if err := m.eng.SaveAs(L.CheckString(1)); err != nil {
		L.RaiseError("save_as: %v", err)
	}
	return 0
}
