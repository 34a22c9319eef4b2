// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package tscn

// Lookup helpers over a finished document. These are plain scans and map
// builds layered on top of the parse result; none of them mutate the
// document.

// NodeByName returns the first node with the given name, or nil.
func (d *Document) NodeByName(name string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].Name == name {
			return &d.Nodes[i]
		}
	}
	return nil
}

// RootNode returns the node without a parent, or nil when the document has
// no nodes.
func (d *Document) RootNode() *Node {
	for i := range d.Nodes {
		if !d.Nodes[i].Parent.IsPresent() {
			return &d.Nodes[i]
		}
	}
	return nil
}

// ExtResourceByID returns the external resource registered under id, or nil.
func (d *Document) ExtResourceByID(id string) *ExternalResource {
	for i := range d.ExtResources {
		if d.ExtResources[i].ID == id {
			return &d.ExtResources[i]
		}
	}
	return nil
}

// SubResourceByID returns the inline resource registered under id, or nil.
func (d *Document) SubResourceByID(id string) *SubResourceRecord {
	for i := range d.SubResources {
		if d.SubResources[i].ID == id {
			return &d.SubResources[i]
		}
	}
	return nil
}

// NodesInGroup returns every node whose groups list contains group, in
// document order.
func (d *Document) NodesInGroup(group string) []*Node {
	var out []*Node
	for i := range d.Nodes {
		for _, g := range d.Nodes[i].Groups {
			if g == group {
				out = append(out, &d.Nodes[i])
				break
			}
		}
	}
	return out
}

// DocumentIndex is a one-pass index over a document's nodes for repeated
// lookups.
type DocumentIndex struct {
	byName   map[string]*Node
	children map[string][]*Node
}

// Index builds name and parent lookups in a single pass over the node list.
// For duplicate names the first occurrence wins, matching NodeByName.
func (d *Document) Index() *DocumentIndex {
	idx := &DocumentIndex{
		byName:   make(map[string]*Node, len(d.Nodes)),
		children: map[string][]*Node{},
	}
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if _, ok := idx.byName[n.Name]; !ok {
			idx.byName[n.Name] = n
		}
		if n.Parent.IsPresent() {
			parent := n.Parent.Value()
			idx.children[parent] = append(idx.children[parent], n)
		}
	}
	return idx
}

// NodeByName returns the indexed node with the given name, or nil.
func (ix *DocumentIndex) NodeByName(name string) *Node {
	return ix.byName[name]
}

// Children returns the nodes whose parent attribute is exactly parent, in
// document order.
func (ix *DocumentIndex) Children(parent string) []*Node {
	return ix.children[parent]
}
