package rstfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Kind identifies the variant of a document tree node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindDocument
	KindSection
	KindTitle
	KindParagraph
	KindBulletList
	KindEnumeratedList
	KindListItem
	KindDefinitionList
	KindDefinitionListItem
	KindTerm
	KindClassifier
	KindDefinition
	KindBlockQuote
	KindLiteralBlock
	KindLiteral
	KindTable
	KindTGroup
	KindTHead
	KindTBody
	KindRow
	KindEntry
	KindColspec
	KindReference
	KindTarget
	KindEmphasis
	KindStrong
	KindSubscript
	KindSuperscript
	KindInline
	KindMath
	KindAbbreviation
	KindAcronym
	KindTitleReference
	KindText
)

var kindNames = [...]string{
	KindInvalid:            "invalid",
	KindDocument:           "document",
	KindSection:            "section",
	KindTitle:              "title",
	KindParagraph:          "paragraph",
	KindBulletList:         "bullet_list",
	KindEnumeratedList:     "enumerated_list",
	KindListItem:           "list_item",
	KindDefinitionList:     "definition_list",
	KindDefinitionListItem: "definition_list_item",
	KindTerm:               "term",
	KindClassifier:         "classifier",
	KindDefinition:         "definition",
	KindBlockQuote:         "block_quote",
	KindLiteralBlock:       "literal_block",
	KindLiteral:            "literal",
	KindTable:              "table",
	KindTGroup:             "tgroup",
	KindTHead:              "thead",
	KindTBody:              "tbody",
	KindRow:                "row",
	KindEntry:              "entry",
	KindColspec:            "colspec",
	KindReference:          "reference",
	KindTarget:             "target",
	KindEmphasis:           "emphasis",
	KindStrong:             "strong",
	KindSubscript:          "subscript",
	KindSuperscript:        "superscript",
	KindInline:             "inline",
	KindMath:               "math",
	KindAbbreviation:       "abbreviation",
	KindAcronym:            "acronym",
	KindTitleReference:     "title_reference",
	KindText:               "text",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// KindByName returns the Kind for a node type name such as "bullet_list".
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	if !ok || k == KindInvalid {
		return KindInvalid, false
	}
	return k, true
}

// MarshalJSON encodes the kind as its node type name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a node type name into a Kind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	kind, ok := KindByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedNode, name)
	}
	*k = kind
	return nil
}

// Attrs is a node attribute mapping with lookup-by-name semantics.
// Values follow the JSON data model: strings, bools, numbers and
// string lists.
type Attrs map[string]any

// Lookup returns the raw attribute value and whether it is present.
func (a Attrs) Lookup(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Str returns a string attribute, or "" when absent.
func (a Attrs) Str(key string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return ""
}

// Bool returns a boolean attribute, or false when absent.
func (a Attrs) Bool(key string) bool {
	if b, ok := a[key].(bool); ok {
		return b
	}
	return false
}

// Int returns an integer attribute, or 0 when absent.
func (a Attrs) Int(key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	}
	return 0
}

// Strings returns a string-list attribute, or nil when absent.
func (a Attrs) Strings(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Node is one element of a parsed document tree. The serializer reads
// nodes but never mutates them.
type Node struct {
	Kind     Kind    `json:"kind"`
	Text     string  `json:"text,omitempty"`
	Attrs    Attrs   `json:"attrs,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Content returns the concatenated text of the node and all its
// descendants, in document order.
func (n *Node) Content() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Text
	}
	var b strings.Builder
	n.appendContent(&b)
	return b.String()
}

func (n *Node) appendContent(b *strings.Builder) {
	if n.Kind == KindText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.appendContent(b)
	}
}

// FindAll returns every descendant of the given kind, including the
// node itself, in document order.
func (n *Node) FindAll(kind Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	n.findAll(kind, &out)
	return out
}

func (n *Node) findAll(kind Kind, out *[]*Node) {
	if n.Kind == kind {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		c.findAll(kind, out)
	}
}

// Settings carries document-level values used to classify external
// reference URIs. Defaults mirror the docutils parser settings.
type Settings struct {
	PEPBaseURL         string `json:"pep_base_url"`
	PEPFileURLTemplate string `json:"pep_file_url_template"`
	RFCBaseURL         string `json:"rfc_base_url"`
	RFCFileURLTemplate string `json:"rfc_file_url_template"`
}

// DefaultSettings returns the docutils-compatible defaults.
func DefaultSettings() Settings {
	return Settings{
		PEPBaseURL:         "https://peps.python.org/",
		PEPFileURLTemplate: "pep-%04d",
		RFCBaseURL:         "https://tools.ietf.org/html/",
		RFCFileURLTemplate: "rfc%d.html",
	}
}

// pepNumber extracts the PEP number from a URI under the PEP base URL.
func (s Settings) pepNumber(uri string) (string, bool) {
	if s.PEPBaseURL == "" || !strings.HasPrefix(uri, s.PEPBaseURL) {
		return "", false
	}
	skip := strings.IndexByte(s.PEPFileURLTemplate, '%')
	if skip < 0 {
		skip = 0
	}
	rest := uri[len(s.PEPBaseURL):]
	if len(rest) <= skip {
		return "", false
	}
	return rest[skip:], true
}

// rfcNumber extracts the RFC number from a URI under the RFC base URL.
func (s Settings) rfcNumber(uri string) (string, bool) {
	if s.RFCBaseURL == "" || !strings.HasPrefix(uri, s.RFCBaseURL) {
		return "", false
	}
	tmpl := s.RFCFileURLTemplate
	skip := strings.IndexByte(tmpl, '%')
	if skip < 0 {
		skip = 0
	}
	tail := 0
	if dot := strings.IndexByte(tmpl, '.'); dot >= 0 {
		tail = len(tmpl) - dot
	}
	rest := uri[len(s.RFCBaseURL):]
	if len(rest) <= skip+tail {
		return "", false
	}
	return rest[skip : len(rest)-tail], true
}

// Document is a root node together with its parser settings.
type Document struct {
	Root     *Node    `json:"root"`
	Settings Settings `json:"settings"`
}

// NewDocument wraps a root node with default settings.
func NewDocument(root *Node) *Document {
	return &Document{Root: root, Settings: DefaultSettings()}
}

// DecodeDocument reads a JSON-encoded document tree. Both the wrapped
// form {"settings": ..., "root": ...} and a bare root node are accepted.
func DecodeDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var wrapped struct {
		Root     *Node     `json:"root"`
		Settings *Settings `json:"settings"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Root != nil {
		doc := NewDocument(wrapped.Root)
		if wrapped.Settings != nil {
			doc.Settings = *wrapped.Settings
		}
		return doc, nil
	}
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return NewDocument(&root), nil
}
