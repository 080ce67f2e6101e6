package rstfmt

// visitor receives enter and leave callbacks during a depth-first walk.
// enter runs before a node's children; returning skip true omits the
// children and the matching leave call. Any error aborts the walk.
type visitor interface {
	enter(n *Node) (skip bool, err error)
	leave(n *Node) error
}

// walk drives a depth-first traversal over the tree rooted at n.
// Children are visited only after enter returns, and leave runs only
// after the whole subtree has been visited.
func walk(n *Node, v visitor) error {
	if n == nil {
		return nil
	}
	skip, err := v.enter(n)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}
	for _, c := range n.Children {
		if err := walk(c, v); err != nil {
			return err
		}
	}
	return v.leave(n)
}
