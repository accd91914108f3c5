package ast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// ErrSkipChildren can be returned from an enter callback to skip the
// node's children without stopping the walk.
//
//nolint:gochecknoglobals // Sentinel error.
var ErrSkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal starting at root.
func Walk(root *Node, walkFunc WalkFunc) error {
	return WalkWithContext(root, walkFunc, nil)
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			if errors.Is(err, ErrSkipChildren) {
				return nil
			}
			return err
		}
	}

	for _, child := range root.Children {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		return leave(root)
	}
	return nil
}

// FindAll returns every node for which predicate returns true, in pre-order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var found []*Node
	_ = Walk(root, func(n *Node) error {
		if predicate(n) {
			found = append(found, n)
		}
		return nil
	})
	return found
}

// FindByKind returns every node of the given kind, in pre-order.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
