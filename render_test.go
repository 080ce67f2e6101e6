package rstfmt

import (
	"strings"
	"testing"
)

func TestRenderCompositeDocument(t *testing.T) {
	root := elem(KindDocument,
		elem(KindTitle, text("Guide")),
		elem(KindSection,
			elem(KindTitle, text("Usage")),
			para("Install it:"),
			elem(KindLiteralBlock, text("pip install x")),
			elem(KindParagraph,
				text("See the "),
				elemAttrs(KindReference, Attrs{"refuri": "http://example.com", "name": "docs"},
					text("docs"),
				),
				text("."),
			),
			elemAttrs(KindTarget, Attrs{"refuri": "http://example.com", "names": []string{"docs"}}),
		),
	)
	want := "#####\n" +
		"Guide\n" +
		"#####\n" +
		"\n\n" +
		"*****\n" +
		"Usage\n" +
		"*****\n" +
		"\n" +
		"Install it::\n" +
		"\n" +
		"  pip install x\n" +
		"\n" +
		"See the `docs`_.\n" +
		"\n\n" +
		".. _`docs`: http://example.com\n"
	if out := renderDoc(t, root); out != want {
		t.Fatalf("composite document:\ngot  %q\nwant %q", out, want)
	}
}

func TestRenderWithWrapLengthOption(t *testing.T) {
	out := renderDoc(t, elem(KindDocument, para("alpha beta gamma")), WithWrapLength(10))
	if out != "alpha beta\ngamma\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderWithBlockquoteIndentOption(t *testing.T) {
	root := elem(KindDocument, elem(KindBlockQuote, para("Quoted.")))
	out := renderDoc(t, root, WithBlockquoteIndent(4))
	if out != "    Quoted.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderWithIndentCharOption(t *testing.T) {
	root := elem(KindDocument, elem(KindBlockQuote, para("Quoted.")))
	out := renderDoc(t, root, WithIndentChar('.'))
	if out != "..Quoted.\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRenderWithTitleCharsOption(t *testing.T) {
	root := elem(KindDocument,
		elem(KindSection, elem(KindTitle, text("Top")), para("Text.")),
	)
	out := renderDoc(t, root, WithTitleChars([]rune{'%', '%'}))
	if !strings.Contains(out, "%%%\nTop\n%%%\n") {
		t.Fatalf("title glyph not applied: %q", out)
	}
}

func TestRenderNilOptionIgnored(t *testing.T) {
	out, err := Render(NewDocument(elem(KindDocument, para("hi"))), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "hi\n" {
		t.Fatalf("got %q", out)
	}
}
