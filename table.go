package rstfmt

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// colSpec describes one table column. A declared width reserves a
// one-character margin on each side for cell wrapping; undeclared
// columns get their width from the rendered content.
type colSpec struct {
	width    int
	wrap     int
	declared bool
}

// tableBuffer holds a table being assembled between entering and
// leaving a table node. Cells accumulate already-wrapped lines; the
// grid is rendered once, when the table closes.
type tableBuffer struct {
	specs      []colSpec
	content    [][][]string // row -> column -> lines
	row        int
	col        int
	headerRows int
	inHeader   bool
}

func newTableBuffer() *tableBuffer {
	return &tableBuffer{row: -1, col: -1}
}

func (t *tableBuffer) addColumn(declaredWidth int) {
	if declaredWidth > 0 {
		t.specs = append(t.specs, colSpec{
			width:    declaredWidth,
			wrap:     declaredWidth - 2,
			declared: true,
		})
		return
	}
	t.specs = append(t.specs, colSpec{})
}

func (t *tableBuffer) startRow() {
	t.row++
	t.col = -1
	t.content = append(t.content, make([][]string, len(t.specs)))
}

func (t *tableBuffer) endRow() {
	if t.inHeader {
		t.headerRows++
	}
}

func (t *tableBuffer) startCell() {
	t.col++
	if t.col >= len(t.specs) {
		panic(fmt.Errorf("%w: table row wider than its column specs", ErrInvariant))
	}
}

func (t *tableBuffer) endCell(moreCols int) {
	t.col += moreCols
}

// cellWrapWidth returns the wrap width of the active cell. Columns
// without a declared width split the available page width evenly,
// minus a small border margin.
func (t *tableBuffer) cellWrapWidth(available int) int {
	if t.col >= 0 && t.col < len(t.specs) && t.specs[t.col].declared {
		return t.specs[t.col].wrap
	}
	n := len(t.specs)
	if n == 0 {
		n = 1
	}
	return available/n - 3
}

// appendBlock adds a wrapped block to the active cell, separated from
// earlier cell content by a blank line.
func (t *tableBuffer) appendBlock(lines []string) {
	t.checkCursor()
	cell := t.content[t.row][t.col]
	if len(cell) > 0 {
		cell = append(cell, "")
	}
	t.content[t.row][t.col] = append(cell, lines...)
}

// appendLine adds a single raw line to the active cell.
func (t *tableBuffer) appendLine(line string) {
	t.checkCursor()
	t.content[t.row][t.col] = append(t.content[t.row][t.col], line)
}

func (t *tableBuffer) checkCursor() {
	if t.row < 0 || t.col < 0 || t.col >= len(t.specs) {
		panic(fmt.Errorf("%w: table content outside a cell", ErrInvariant))
	}
}

// render produces the bordered grid. Undeclared column widths are
// computed from the widest rendered line in the column. The rule after
// the last header row is double (=), all others single (-). Cells
// shorter than the row's tallest cell are padded with blank lines.
func (t *tableBuffer) render() []string {
	widths := make([]int, len(t.specs))
	for i, sp := range t.specs {
		if sp.declared {
			widths[i] = sp.wrap
			continue
		}
		for _, row := range t.content {
			for _, line := range row[i] {
				if w := runewidth.StringWidth(line); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	out := []string{tableRule(widths, false)}
	for rowIdx, row := range t.content {
		lineCount := 0
		for _, cell := range row {
			if len(cell) > lineCount {
				lineCount = len(cell)
			}
		}
		for li := 0; li < lineCount; li++ {
			var b strings.Builder
			b.WriteByte('|')
			for colIdx, width := range widths {
				line := ""
				if li < len(row[colIdx]) {
					line = row[colIdx][li]
				}
				pad := width - runewidth.StringWidth(line)
				if pad < 0 {
					pad = 0
				}
				b.WriteByte(' ')
				b.WriteString(line)
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(" |")
			}
			out = append(out, b.String()+"\n")
		}
		out = append(out, tableRule(widths, rowIdx == t.headerRows-1))
	}
	return out
}

func tableRule(widths []int, double bool) string {
	dash := "-"
	if double {
		dash = "="
	}
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat(dash, w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}
