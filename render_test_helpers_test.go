package rstfmt

import "testing"

func text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

func elem(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

func elemAttrs(kind Kind, attrs Attrs, children ...*Node) *Node {
	return &Node{Kind: kind, Attrs: attrs, Children: children}
}

func para(s string) *Node {
	return elem(KindParagraph, text(s))
}

func item(children ...*Node) *Node {
	return elem(KindListItem, children...)
}

func enumList(enumType, prefix, suffix string, items ...*Node) *Node {
	return elemAttrs(KindEnumeratedList, Attrs{
		"enumtype": enumType,
		"prefix":   prefix,
		"suffix":   suffix,
	}, items...)
}

func renderDoc(t *testing.T, root *Node, opts ...Option) string {
	t.Helper()
	out, err := Render(NewDocument(root), opts...)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}
