// Package rstfmt re-emits a parsed reStructuredText document tree as
// normalized plain text.
//
// The package does not parse markup: it receives an already-built tree of
// typed nodes (headings, paragraphs, lists, tables, inline markup, links)
// and serializes it with consistent indentation, line wrapping, list
// numbering and table layout. Inline text is buffered until a block
// commits, so wrapping decisions are made over whole blocks and literal
// block cues can be attached to the line before them. Link targets are
// collected during the walk and emitted once, deduplicated, at the end of
// the document.
//
// Core properties:
//   - Single depth-first pass; one writer instance per document
//   - Width-aware greedy wrapping that never splits a word
//   - Stack-disciplined indentation and list numbering state
//   - Deterministic output: the same tree always yields the same bytes
//
// Example:
//
//	doc := rstfmt.NewDocument(root)
//	text, err := rstfmt.Render(doc, rstfmt.WithWrapLength(72))
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.Stdout.WriteString(text)
//
// Rendering can be customized using Options such as per-depth title
// adornment characters and bullet glyphs.
package rstfmt
