package rstfmt

import (
	"errors"
	"testing"
)

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	doc := NewDocument(elem(KindDocument,
		elem(KindSection,
			elem(KindTitle, text("T")),
			para("Body."),
			elem(KindBulletList, item(para("x"))),
			elem(KindTable,
				elem(KindTGroup,
					elemAttrs(KindColspec, Attrs{"colwidth": 10}),
					elem(KindTBody,
						elem(KindRow, elem(KindEntry, para("cell"))),
					),
				),
			),
		),
	))
	if err := ValidateDocument(doc); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateNilDocument(t *testing.T) {
	if err := ValidateDocument(nil); !errors.Is(err, ErrNilDocument) {
		t.Fatalf("err = %v, want ErrNilDocument", err)
	}
	if err := ValidateDocument(&Document{}); !errors.Is(err, ErrNilDocument) {
		t.Fatalf("err = %v, want ErrNilDocument", err)
	}
}

func TestValidateRootMustBeDocument(t *testing.T) {
	err := ValidateDocument(NewDocument(para("loose")))
	if !errors.Is(err, ErrMalformedTree) {
		t.Fatalf("err = %v, want ErrMalformedTree", err)
	}
}

func TestValidateRejectsMisplacedNodes(t *testing.T) {
	cases := []struct {
		name string
		root *Node
	}{
		{"nested document", elem(KindDocument, elem(KindDocument))},
		{"text with children", elem(KindDocument, &Node{Kind: KindText, Children: []*Node{text("x")}})},
		{"tgroup outside table", elem(KindDocument, elem(KindTGroup))},
		{"colspec outside table", elem(KindDocument, elem(KindColspec))},
		{"thead outside tgroup", elem(KindDocument, elem(KindTable, elem(KindTHead)))},
		{"row outside table body", elem(KindDocument, elem(KindRow))},
		{"entry outside row", elem(KindDocument, elem(KindEntry))},
		{"list item outside list", elem(KindDocument, item(para("x")))},
		{"term outside definition item", elem(KindDocument, elem(KindTerm, text("t")))},
	}
	for _, c := range cases {
		err := ValidateDocument(NewDocument(c.root))
		if !errors.Is(err, ErrMalformedTree) {
			t.Fatalf("%s: err = %v, want ErrMalformedTree", c.name, err)
		}
	}
}

func TestValidateRejectsUnknownKind(t *testing.T) {
	err := ValidateDocument(NewDocument(elem(KindDocument, &Node{Kind: Kind(99)})))
	if !errors.Is(err, ErrUnsupportedNode) {
		t.Fatalf("err = %v, want ErrUnsupportedNode", err)
	}
}

func TestValidateRejectsNilChild(t *testing.T) {
	err := ValidateDocument(NewDocument(&Node{Kind: KindDocument, Children: []*Node{nil}}))
	if !errors.Is(err, ErrMalformedTree) {
		t.Fatalf("err = %v, want ErrMalformedTree", err)
	}
}
