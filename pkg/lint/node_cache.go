package lint

import "github.com/yaklabco/gojslint/pkg/ast"

// NodeCache indexes the nodes of a program by kind.
//
// The tree is walked once, on the first lookup, and every rule run against
// the same program shares the result. Without it each rule that looks for
// call expressions or declarations would walk the tree again.
//
// # Do Not Mutate Returned Slices
//
// The slices returned by Nodes are shared across all rules. Copy before
// sorting or filtering in place.
//
// # Thread Safety
//
// NodeCache is NOT thread-safe. Rules run sequentially for a single
// program; each analysis pass builds its own cache.
type NodeCache struct {
	byKind map[ast.NodeKind][]*ast.Node
	built  bool
}

func newNodeCache() *NodeCache {
	return &NodeCache{}
}

// build walks the tree once and groups all nodes by kind.
func (nc *NodeCache) build(root *ast.Node) {
	if nc.built || root == nil {
		return
	}

	nc.byKind = make(map[ast.NodeKind][]*ast.Node)

	//nolint:errcheck // Walk visitor never returns error in this usage
	ast.Walk(root, func(node *ast.Node) error {
		nc.byKind[node.Kind] = append(nc.byKind[node.Kind], node)
		return nil
	})

	nc.built = true
}

// Nodes returns all nodes of the given kinds in pre-order per kind.
// With a single kind the shared slice is returned; do not mutate it.
func (nc *NodeCache) Nodes(kinds ...ast.NodeKind) []*ast.Node {
	if len(kinds) == 1 {
		return nc.byKind[kinds[0]]
	}
	var out []*ast.Node
	for _, kind := range kinds {
		out = append(out, nc.byKind[kind]...)
	}
	return out
}
