package rstfmt

import "errors"

// Render serializes a document tree to normalized reStructuredText. A
// fresh serializer is constructed per call, so a Document may be
// rendered repeatedly but no state survives between calls. Structural
// invariant violations abort the walk and surface as errors wrapping
// ErrInvariant; no partial output is returned.
func Render(doc *Document, opts ...Option) (text string, err error) {
	if doc == nil || doc.Root == nil {
		return "", ErrNilDocument
	}
	options := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, ErrInvariant) {
				text = ""
				err = e
				return
			}
			panic(r)
		}
	}()
	return newWriter(doc, options).run()
}
