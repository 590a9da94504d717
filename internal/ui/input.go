package ui

// Editor is the single-line command input.
type Editor struct {
	buf []rune
}

// Insert appends a character.
func (e *Editor) Insert(r rune) {
	e.buf = append(e.buf, r)
}

// Backspace removes the last character, if any.
func (e *Editor) Backspace() {
	if len(e.buf) > 0 {
		e.buf = e.buf[:len(e.buf)-1]
	}
}

// Text returns the current line.
func (e *Editor) Text() string { return string(e.buf) }

// Submit returns the current line and clears the editor.
func (e *Editor) Submit() string {
	line := string(e.buf)
	e.buf = e.buf[:0]
	return line
}
