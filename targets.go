package rstfmt

import (
	"slices"
	"sort"
	"strings"
)

// targetRegistry accumulates external link targets over a whole
// document so identical URIs are emitted once, as indirect references,
// instead of repeating the URI inline.
type targetRegistry struct {
	anonymous []string            // URIs in visitation order
	named     map[string][]string // URI -> referencing names
}

func newTargetRegistry() targetRegistry {
	return targetRegistry{named: make(map[string][]string)}
}

// add records a target URI and any names pointing at it. Anonymous
// targets keep their visitation order; names are deduplicated per URI.
func (t *targetRegistry) add(uri string, names []string, anonymous bool) {
	if anonymous {
		t.anonymous = append(t.anonymous, uri)
	}
	existing := t.named[uri]
	for _, name := range names {
		if slices.Contains(existing, name) {
			continue
		}
		existing = append(existing, name)
	}
	t.named[uri] = existing
}

func (t *targetRegistry) empty() bool {
	return len(t.anonymous) == 0 && len(t.named) == 0
}

// render emits the link definition block: anonymous targets first, in
// visitation order, each preceded by the named definitions sharing its
// URI (hoisted once per URI); then the remaining named targets in
// lexicographic URI order, one direct definition plus indirect aliases
// for any extra names.
func (t *targetRegistry) render() []string {
	if t.empty() {
		return nil
	}
	out := []string{"\n\n"}

	hoisted := make(map[string]bool)
	for _, uri := range t.anonymous {
		if names, ok := t.named[uri]; ok && !hoisted[uri] {
			hoisted[uri] = true
			sorted := append([]string(nil), names...)
			sort.Strings(sorted)
			for _, name := range sorted {
				out = append(out, ".. _`"+name+"`:\n")
			}
		}
		out = append(out, ".. __: "+uri+"\n")
	}

	uris := make([]string, 0, len(t.named))
	for uri := range t.named {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	for _, uri := range uris {
		if hoisted[uri] {
			continue
		}
		names := append([]string(nil), t.named[uri]...)
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		out = append(out, ".. _`"+names[0]+"`: "+uri+"\n")
		for _, alias := range names[1:] {
			out = append(out, ".. _`"+alias+"`: _`"+names[0]+"`\n")
		}
	}
	return out
}

// roleRegistry tracks custom inline roles so each is declared once,
// lazily, the first time it is encountered.
type roleRegistry struct {
	declared []string
	decls    []string
}

// register adds a role declaration unless the role was seen before.
// Options are emitted as indented fields in key order.
func (r *roleRegistry) register(role string, options map[string]string, indentChar rune) {
	if slices.Contains(r.declared, role) {
		return
	}
	r.declared = append(r.declared, role)

	var b strings.Builder
	b.WriteString(".. role:: ")
	b.WriteString(role)
	b.WriteByte('\n')
	if len(options) > 0 {
		keys := make([]string, 0, len(options))
		for k := range options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		indent := strings.Repeat(string(indentChar), 2)
		for _, k := range keys {
			b.WriteString(indent)
			b.WriteByte(':')
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(options[k])
			b.WriteByte('\n')
		}
	}
	r.decls = append(r.decls, b.String())
}
