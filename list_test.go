package rstfmt

import (
	"strconv"
	"strings"
	"testing"
)

func TestBulletListTight(t *testing.T) {
	root := elem(KindDocument,
		elem(KindBulletList,
			item(para("one")),
			item(para("two")),
			item(para("three")),
		),
		para("After."),
	)
	want := "* one\n* two\n* three\n\nAfter.\n"
	if out := renderDoc(t, root); out != want {
		t.Fatalf("bullet list:\ngot  %q\nwant %q", out, want)
	}
}

func TestEnumLowerAlpha(t *testing.T) {
	root := elem(KindDocument,
		enumList(enumLowerAlpha, "", ".",
			item(para("one")),
			item(para("two")),
			item(para("three")),
		),
	)
	want := "a. one\nb. two\nc. three\n"
	if out := renderDoc(t, root); out != want {
		t.Fatalf("loweralpha list:\ngot  %q\nwant %q", out, want)
	}
}

func TestEnumArabicParens(t *testing.T) {
	root := elem(KindDocument,
		enumList(enumArabic, "(", ")",
			item(para("one")),
			item(para("two")),
		),
	)
	want := "(1) one\n(2) two\n"
	if out := renderDoc(t, root); out != want {
		t.Fatalf("arabic list:\ngot  %q\nwant %q", out, want)
	}
}

func TestEnumUpperRoman(t *testing.T) {
	root := elem(KindDocument,
		enumList(enumUpperRoman, "", ".",
			item(para("one")),
			item(para("two")),
			item(para("three")),
			item(para("four")),
		),
	)
	want := "I. one\nII. two\nIII. three\nIV. four\n"
	if out := renderDoc(t, root); out != want {
		t.Fatalf("upperroman list:\ngot  %q\nwant %q", out, want)
	}
}

func TestEnumCounterMonotonic(t *testing.T) {
	items := make([]*Node, 12)
	for i := range items {
		items[i] = item(para("entry"))
	}
	out := renderDoc(t, elem(KindDocument, enumList(enumArabic, "", ".", items...)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12: %q", len(lines), out)
	}
	for i, line := range lines {
		want := strconv.Itoa(i+1) + ". entry"
		if line != want {
			t.Fatalf("line %d = %q, want %q", i, line, want)
		}
	}
}

func TestNestedListSeparated(t *testing.T) {
	root := elem(KindDocument,
		elem(KindBulletList,
			item(para("a")),
			item(para("b"),
				elem(KindBulletList,
					item(para("b1")),
				),
			),
			item(para("c")),
		),
	)
	want := "* a\n* b\n\n  * b1\n\n* c\n"
	if out := renderDoc(t, root); out != want {
		t.Fatalf("nested list:\ngot  %q\nwant %q", out, want)
	}
}

func TestLongItemGetsBlankSpacer(t *testing.T) {
	long := strings.Repeat("word ", 20) + "tail" // 104 characters unwrapped
	root := elem(KindDocument,
		elem(KindBulletList,
			item(para(long)),
			item(para("short")),
		),
	)
	out := renderDoc(t, root)
	if !strings.Contains(out, "\n\n* short\n") {
		t.Fatalf("expected blank line before the item after a wrapped one: %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 79 {
			t.Fatalf("line exceeds wrap width: %q", line)
		}
	}
}

func TestWrappedItemContinuationIndent(t *testing.T) {
	root := elem(KindDocument,
		elem(KindBulletList,
			item(para("alpha beta gamma")),
		),
	)
	out := renderDoc(t, root, WithWrapLength(10))
	want := "* alpha\n  beta\n  gamma\n"
	if out != want {
		t.Fatalf("continuation indent:\ngot  %q\nwant %q", out, want)
	}
}

func TestAlphaMarker(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "a"}, {2, "b"}, {26, "z"}, {27, "aa"}, {28, "ab"}, {52, "az"}, {53, "ba"}, {702, "zz"}, {703, "aaa"},
	}
	for _, c := range cases {
		if got := alphaMarker(c.n); got != c.want {
			t.Fatalf("alphaMarker(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestRomanNumeral(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "i"}, {4, "iv"}, {9, "ix"}, {14, "xiv"}, {40, "xl"}, {90, "xc"}, {1999, "mcmxcix"}, {3888, "mmmdccclxxxviii"},
	}
	for _, c := range cases {
		if got := romanNumeral(c.n); got != c.want {
			t.Fatalf("romanNumeral(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestEnumMarkerCase(t *testing.T) {
	if got := enumMarker(enumUpperAlpha, 2); got != "B" {
		t.Fatalf("upperalpha = %q, want B", got)
	}
	if got := enumMarker(enumLowerRoman, 4); got != "iv" {
		t.Fatalf("lowerroman = %q, want iv", got)
	}
	if got := enumMarker(enumUpperRoman, 4); got != "IV" {
		t.Fatalf("upperroman = %q, want IV", got)
	}
}
