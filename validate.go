package rstfmt

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDocument reports a missing document or root node.
	ErrNilDocument = errors.New("nil document")
	// ErrUnsupportedNode reports a node kind outside the supported set.
	ErrUnsupportedNode = errors.New("unsupported node")
	// ErrMalformedTree reports a node in a position its kind does not allow.
	ErrMalformedTree = errors.New("malformed document tree")
	// ErrInvariant reports a broken serializer invariant, which is a bug
	// in the traversal rather than in the input.
	ErrInvariant = errors.New("serializer invariant violated")
)

// ValidateDocument checks tree well-formedness before rendering: a
// document root, known node kinds, childless text nodes, and table and
// list furniture only inside their owning constructs.
func ValidateDocument(doc *Document) error {
	if doc == nil || doc.Root == nil {
		return ErrNilDocument
	}
	if doc.Root.Kind != KindDocument {
		return fmt.Errorf("%w: root is %s, want document", ErrMalformedTree, doc.Root.Kind)
	}
	return validateNode(doc.Root, KindInvalid, false)
}

func validateNode(n *Node, parent Kind, inTable bool) error {
	if n == nil {
		return fmt.Errorf("%w: nil child of %s", ErrMalformedTree, parent)
	}
	if n.Kind == KindInvalid || int(n.Kind) >= len(kindNames) {
		return fmt.Errorf("%w: %s", ErrUnsupportedNode, n.Kind)
	}
	switch n.Kind {
	case KindText:
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: text node with children", ErrMalformedTree)
		}
	case KindDocument:
		if parent != KindInvalid {
			return fmt.Errorf("%w: nested document", ErrMalformedTree)
		}
	case KindTGroup, KindColspec:
		if !inTable {
			return fmt.Errorf("%w: %s outside table", ErrMalformedTree, n.Kind)
		}
	case KindTHead, KindTBody:
		if parent != KindTGroup {
			return fmt.Errorf("%w: %s outside tgroup", ErrMalformedTree, n.Kind)
		}
	case KindRow:
		if parent != KindTHead && parent != KindTBody && parent != KindTGroup {
			return fmt.Errorf("%w: row outside table body", ErrMalformedTree)
		}
	case KindEntry:
		if parent != KindRow {
			return fmt.Errorf("%w: entry outside row", ErrMalformedTree)
		}
	case KindListItem:
		if parent != KindBulletList && parent != KindEnumeratedList {
			return fmt.Errorf("%w: list_item outside list", ErrMalformedTree)
		}
	case KindTerm, KindClassifier, KindDefinition:
		if parent != KindDefinitionListItem {
			return fmt.Errorf("%w: %s outside definition_list_item", ErrMalformedTree, n.Kind)
		}
	}
	childInTable := inTable || n.Kind == KindTable
	for _, c := range n.Children {
		if err := validateNode(c, n.Kind, childInTable); err != nil {
			return err
		}
	}
	return nil
}
