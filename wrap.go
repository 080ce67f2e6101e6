package rstfmt

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"
)

// indentFrame is one level of the indentation stack. first, when set,
// replaces the plain indentation on the first wrapped line only (list
// markers, field prefixes).
type indentFrame struct {
	width    int
	first    string
	hasFirst bool
}

// indentStack tracks indentation increments with strict LIFO
// discipline. The base frame belongs to the document and is never
// popped; popping it is a traversal bug.
type indentStack struct {
	frames []indentFrame
}

func newIndentStack() indentStack {
	return indentStack{frames: []indentFrame{{hasFirst: true}}}
}

func (s *indentStack) push(width int) {
	s.frames = append(s.frames, indentFrame{width: width})
}

func (s *indentStack) pushFirst(width int, first string) {
	s.frames = append(s.frames, indentFrame{width: width, first: first, hasFirst: true})
}

func (s *indentStack) pop() int {
	if len(s.frames) <= 1 {
		panic(fmt.Errorf("%w: dedent without matching indent", ErrInvariant))
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top.width
}

// width is the sum of all active increments.
func (s *indentStack) width() int {
	total := 0
	for _, f := range s.frames {
		total += f.width
	}
	return total
}

func (s *indentStack) indentation(c rune) string {
	return strings.Repeat(string(c), s.width())
}

// firstLine returns the active first-line text: the top frame's
// override when one is set, plain indentation otherwise.
func (s *indentStack) firstLine(c rune) string {
	top := s.frames[len(s.frames)-1]
	if top.hasFirst {
		return top.first
	}
	return s.indentation(c)
}

// clearFirst drops the top frame's override so later blocks in the
// same construct fall back to plain indentation.
func (s *indentStack) clearFirst() {
	s.frames[len(s.frames)-1].hasFirst = false
}

// wrapText greedily wraps text at whitespace boundaries so that no
// line exceeds width, counting the indent prefixes toward the limit.
// The first line is prefixed with first, every following line with
// indent. A single token wider than the limit is never split; it
// overflows on its own line.
func wrapText(text string, width int, indent, first string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(first)
	lineWidth := ansi.PrintableRuneWidth(first)
	for i, word := range words {
		w := ansi.PrintableRuneWidth(word)
		if i == 0 {
			b.WriteString(word)
			lineWidth += w
			continue
		}
		if lineWidth+1+w > width {
			b.WriteByte('\n')
			b.WriteString(indent)
			b.WriteString(word)
			lineWidth = ansi.PrintableRuneWidth(indent) + w
			continue
		}
		b.WriteByte(' ')
		b.WriteString(word)
		lineWidth += 1 + w
	}
	return b.String()
}
