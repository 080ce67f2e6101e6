package rstfmt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"golang.org/x/text/unicode/norm"
)

// listStyle is one frame of the list nesting stack: a bullet glyph, or
// an enumeration descriptor with a running counter. The counter only
// resets by the frame being popped when its list closes.
type listStyle struct {
	bullet   rune
	enum     bool
	enumType string
	prefix   string
	suffix   string
	counter  int
}

// writer is the serializer state machine. One instance serializes
// exactly one document: all registries and stacks are scoped to a
// single walk and a fresh writer is built per Render call.
type writer struct {
	opts Options
	doc  *Document

	// Document parts, concatenated once at the end of the walk.
	header   []string
	title    []string
	subtitle []string
	roles    roleRegistry
	body     []string
	footer   []string

	sectionLevel  int
	indents       indentStack
	spacer        string
	listStyles    []listStyle
	listFinished  bool
	targets       targetRegistry
	buffer        []string
	lastBufferLen int
	ignoreInlines bool
	table         *tableBuffer
}

func newWriter(doc *Document, opts Options) *writer {
	return &writer{
		opts:    opts,
		doc:     doc,
		indents: newIndentStack(),
		targets: newTargetRegistry(),
	}
}

func (w *writer) run() (string, error) {
	if err := walk(w.doc.Root, w); err != nil {
		return "", err
	}
	return w.astext(), nil
}

func (w *writer) astext() string {
	var b strings.Builder
	for _, part := range [][]string{w.header, w.title, w.subtitle, w.roles.decls, w.body, w.footer} {
		for _, s := range part {
			b.WriteString(s)
		}
	}
	return b.String()
}

// writeBuffer delays rendering of inline text until the owning block
// commits.
func (w *writer) writeBuffer(text string) {
	w.buffer = append(w.buffer, text)
}

// commit wraps the buffered inline text and appends it to the body,
// preceded by the pending spacer unless nothing has been emitted yet.
// The unwrapped width is recorded for list spacing decisions.
func (w *writer) commit() {
	if len(w.body) > 0 {
		w.body = append(w.body, w.spacer)
	}
	text := strings.Join(w.buffer, "")
	w.lastBufferLen = ansi.PrintableRuneWidth(text)
	w.body = append(w.body, w.wrap(text, 0)+"\n")
	w.buffer = w.buffer[:0]
}

// commitToTable is the commit path used inside a table: the buffer is
// wrapped to the active cell's column width and appended to the cell
// instead of the body.
func (w *writer) commitToTable() {
	width := w.table.cellWrapWidth(w.opts.WrapLength - w.indents.width() - 1)
	text := strings.Join(w.buffer, "")
	w.lastBufferLen = ansi.PrintableRuneWidth(text)
	w.table.appendBlock(strings.Split(w.wrap(text, width), "\n"))
	w.buffer = w.buffer[:0]
}

// wrap applies the active indentation and first-line override. A
// non-positive width means the configured wrap length.
func (w *writer) wrap(text string, width int) string {
	if width <= 0 {
		width = w.opts.WrapLength
	}
	indent := w.indents.indentation(w.opts.IndentChar)
	first := w.indents.firstLine(w.opts.IndentChar)
	return wrapText(text, width, indent, first)
}

func (w *writer) bulletChar() rune {
	return runeAt(w.opts.BulletChars, len(w.listStyles))
}

// enter implements the visitor enter callback.
func (w *writer) enter(n *Node) (bool, error) {
	switch n.Kind {
	case KindText:
		text := norm.NFC.String(n.Text)
		w.writeBuffer(strings.ReplaceAll(text, "*", `\*`))
	case KindDocument, KindTitle, KindTerm, KindTGroup, KindTBody,
		KindDefinitionListItem:
		// containers with no entry behavior
	case KindSection:
		w.sectionLevel++
	case KindParagraph:
		w.enterParagraph(n)
	case KindBulletList:
		w.body = append(w.body, w.spacer)
		w.listFinished = false
		w.listStyles = append(w.listStyles, listStyle{bullet: w.bulletChar()})
		w.spacer = ""
	case KindEnumeratedList:
		w.body = append(w.body, w.spacer)
		w.listFinished = false
		w.listStyles = append(w.listStyles, listStyle{
			enum:     true,
			enumType: n.Attrs.Str("enumtype"),
			prefix:   n.Attrs.Str("prefix"),
			suffix:   n.Attrs.Str("suffix"),
		})
		w.spacer = ""
	case KindListItem:
		w.enterListItem()
	case KindDefinitionList:
		w.spacer = "\n"
	case KindClassifier:
		w.writeBuffer(" : ")
	case KindDefinition:
		w.commit()
		w.spacer = ""
		w.indents.push(2)
	case KindBlockQuote:
		w.indents.push(w.opts.BlockquoteIndent)
	case KindLiteralBlock:
		return w.enterLiteralBlock(n)
	case KindLiteral:
		w.enterLiteral(n)
	case KindTable:
		w.table = newTableBuffer()
	case KindTHead:
		w.table.inHeader = true
	case KindRow:
		w.table.startRow()
	case KindEntry:
		w.table.startCell()
	case KindColspec:
		w.table.addColumn(n.Attrs.Int("colwidth"))
		return true, nil
	case KindReference:
		return w.enterReference(n)
	case KindTarget:
		return w.enterTarget(n)
	case KindEmphasis:
		w.writeBuffer("*")
	case KindStrong:
		w.writeBuffer("**")
	case KindSubscript:
		w.writeBuffer(":subscript:`")
	case KindSuperscript:
		w.writeBuffer(":superscript:`")
	case KindInline:
		w.enterInline(n)
	case KindMath:
		w.writeBuffer(":math:`")
	case KindAbbreviation:
		w.writeBuffer(":abbreviation:`")
	case KindAcronym:
		w.writeBuffer(":acronym:`")
	case KindTitleReference:
		w.writeBuffer(":title-reference:`")
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Kind)
	}
	return false, nil
}

// leave implements the visitor leave callback.
func (w *writer) leave(n *Node) error {
	switch n.Kind {
	case KindDocument:
		w.leaveDocument()
	case KindSection:
		w.sectionLevel--
	case KindTitle:
		w.leaveTitle()
	case KindParagraph:
		if w.table != nil {
			w.commitToTable()
		} else {
			w.commit()
		}
		w.spacer = "\n"
		w.indents.clearFirst()
	case KindBulletList, KindEnumeratedList:
		w.popListStyle()
		w.listFinished = true
		w.spacer = "\n"
	case KindListItem:
		w.indents.pop()
		// Only space out items whose last block wrapped onto several
		// lines; short items stay tight.
		if w.lastBufferLen > w.opts.WrapLength {
			w.spacer = "\n"
		} else {
			w.spacer = ""
		}
	case KindDefinition, KindBlockQuote:
		w.indents.pop()
	case KindLiteral:
		w.leaveLiteral(n)
	case KindTHead:
		w.table.inHeader = false
	case KindRow:
		w.table.endRow()
	case KindEntry:
		w.table.endCell(n.Attrs.Int("morecols"))
	case KindTable:
		w.leaveTable()
	case KindReference:
		w.leaveReference(n)
	case KindTarget:
		// Only reached for inline internal targets; every other target
		// variant skips its subtree on enter.
		w.writeBuffer("`")
	case KindEmphasis:
		w.writeBuffer("*")
	case KindStrong:
		w.writeBuffer("**")
	case KindSubscript, KindSuperscript, KindMath, KindAbbreviation,
		KindAcronym, KindTitleReference:
		w.writeBuffer("`")
	case KindInline:
		if !w.ignoreInlines {
			w.writeBuffer("`")
		}
	}
	return nil
}

func (w *writer) leaveDocument() {
	w.body = append(w.body, w.targets.render()...)
	if len(w.roles.declared) > 0 {
		w.roles.decls = append(w.roles.decls, "\n")
	}
}

// enterParagraph escapes a leading "A."-style token so the paragraph
// cannot be misread as a single-item enumerated list.
func (w *writer) enterParagraph(n *Node) {
	text := n.Content()
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 || len(text) <= size {
		return
	}
	if next, _ := utf8.DecodeRuneInString(text[size:]); next == '.' && unicode.IsLetter(r) {
		w.writeBuffer(`\`)
	}
}

func (w *writer) enterListItem() {
	w.body = append(w.body, w.spacer)
	if w.listFinished {
		// Separate the end of a nested list from the next item of its
		// parent list.
		w.body = append(w.body, "\n")
		w.listFinished = false
	}

	if len(w.listStyles) == 0 {
		panic(fmt.Errorf("%w: list item outside a list", ErrInvariant))
	}
	style := &w.listStyles[len(w.listStyles)-1]
	var point string
	if style.enum {
		style.counter++
		point = style.prefix + enumMarker(style.enumType, style.counter) + style.suffix
	} else {
		point = string(style.bullet)
	}

	marker := point + " "
	first := w.indents.indentation(w.opts.IndentChar) + marker
	w.indents.pushFirst(runewidth.StringWidth(marker), first)
	w.spacer = ""
}

func (w *writer) popListStyle() {
	if len(w.listStyles) == 0 {
		panic(fmt.Errorf("%w: list style stack underflow", ErrInvariant))
	}
	w.listStyles = w.listStyles[:len(w.listStyles)-1]
}

func (w *writer) enterLiteral(n *Node) {
	classes := n.Attrs.Strings("classes")
	if len(classes) > 1 {
		options := map[string]string{}
		if len(classes) == 3 {
			options["language"] = classes[2]
		}
		w.roles.register(classes[1]+"(code)", options, w.opts.IndentChar)
		w.writeBuffer(":" + classes[1] + ":`")
		w.ignoreInlines = true
		return
	}
	w.writeBuffer("``")
}

func (w *writer) leaveLiteral(n *Node) {
	if len(n.Attrs.Strings("classes")) > 1 {
		w.writeBuffer("`")
		w.ignoreInlines = false
		return
	}
	w.writeBuffer("``")
}

// enterLiteralBlock emits the block cue and the indented raw lines in
// one step; the subtree is always skipped.
func (w *writer) enterLiteralBlock(n *Node) (bool, error) {
	classes := n.Attrs.Strings("classes")
	if len(classes) > 1 {
		w.writeBuffer(".. code:: " + classes[1])
	} else if len(classes) == 1 {
		w.writeBuffer(".. code::")
	} else if last, ok := w.trailingColonLine(); ok {
		// The previous paragraph ended with a colon: turn it into the
		// shorthand "::" cue instead of emitting a separate one.
		w.body[len(w.body)-1] = last[:len(last)-2] + ":" + last[len(last)-2:]
		w.spacer = ""
	} else {
		w.writeBuffer("::")
		w.spacer = "\n"
	}

	if w.table != nil {
		w.commitToTable()
		w.table.appendLine("")
	} else {
		w.commit()
		w.body = append(w.body, w.spacer)
	}
	w.spacer = "\n"

	w.indents.push(2)
	indent := w.indents.indentation(w.opts.IndentChar)
	for _, line := range strings.Split(n.Content(), "\n") {
		if w.table != nil {
			w.table.appendLine(indent + line)
		} else {
			w.body = append(w.body, indent+line+"\n")
		}
	}
	w.indents.pop()
	return true, nil
}

func (w *writer) trailingColonLine() (string, bool) {
	if len(w.body) == 0 {
		return "", false
	}
	last := w.body[len(w.body)-1]
	if len(last) > 1 && last[len(last)-2] == ':' {
		return last, true
	}
	return "", false
}

func (w *writer) enterInline(n *Node) {
	if w.ignoreInlines {
		return
	}
	classes := n.Attrs.Strings("classes")
	for _, role := range classes {
		w.roles.register(role, nil, w.opts.IndentChar)
	}
	w.writeBuffer(":" + strings.Join(classes, " ") + ":`")
}

// enterReference classifies a reference as internal, PEP, RFC or
// generic external. PEP and RFC references collapse to a short
// role-marked number and skip their text; generic external links keep
// their text and rely on a separate target node for the URI.
func (w *writer) enterReference(n *Node) (bool, error) {
	refuri := n.Attrs.Str("refuri")
	if refuri == "" {
		w.writeBuffer("`")
		return false, nil
	}
	if num, ok := w.doc.Settings.pepNumber(refuri); ok {
		w.writeBuffer(":pep-reference:`" + num + "`")
		return true, nil
	}
	if num, ok := w.doc.Settings.rfcNumber(refuri); ok {
		w.writeBuffer(":rfc-reference:`" + num + "`")
		return true, nil
	}
	if n.Attrs.Str("name") != "" {
		// Text is not an explicitly given URI.
		w.writeBuffer("`")
	}
	return false, nil
}

func (w *writer) leaveReference(n *Node) {
	if n.Attrs.Str("refuri") == "" || n.Attrs.Str("name") != "" {
		w.writeBuffer("`_")
		if n.Attrs.Bool("anonymous") {
			w.writeBuffer("_")
		}
	}
}

// enterTarget handles the three target variants: inline internal
// targets render as markup around their text, internal block targets
// are resolved against the document's references (or skipped when no
// reference names them), and external targets populate the registry
// flushed at document end.
func (w *writer) enterTarget(n *Node) (bool, error) {
	if n.Content() != "" {
		w.writeBuffer("_`")
		return false, nil
	}

	if refid := n.Attrs.Str("refid"); refid != "" {
		refName := ""
		for _, cand := range w.doc.Root.FindAll(KindReference) {
			if cand.Attrs.Str("refid") == refid {
				refName = cand.Attrs.Str("name")
				break
			}
		}
		if refName == "" {
			// The target points at an external hyperlink target placed
			// below it; that target emits the definition.
			return true, nil
		}
		// Through the buffer so active indentation applies.
		w.writeBuffer(".. _`" + refName + "`:")
		w.commit()
		return true, nil
	}

	w.targets.add(n.Attrs.Str("refuri"), n.Attrs.Strings("names"), n.Attrs.Bool("anonymous"))
	return true, nil
}

func (w *writer) leaveTable() {
	if len(w.body) > 0 {
		w.body = append(w.body, w.spacer)
	}
	w.body = append(w.body, w.table.render()...)
	w.table = nil
}

// leaveTitle renders the buffered title text with its per-depth
// adornment. Rule length equals the unwrapped title width; titles are
// assumed never to need wrapping.
func (w *writer) leaveTitle() {
	length := runewidth.StringWidth(strings.Join(w.buffer, ""))
	level := w.sectionLevel
	w.body = append(w.body, stringAt(w.opts.TitlePrefix, level))
	if boolAt(w.opts.TitleOverline, level) {
		w.body = append(w.body, w.spacer)
		w.renderTitleRule(level, length)
		w.spacer = ""
	}
	w.commit()
	w.renderTitleRule(level, length)
	w.spacer = stringAt(w.opts.TitleSuffix, level)
}

func (w *writer) renderTitleRule(level, length int) {
	glyph := runeAt(w.opts.TitleChars, level)
	w.body = append(w.body, strings.Repeat(string(glyph), length), "\n")
}
