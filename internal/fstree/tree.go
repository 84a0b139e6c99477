// Package fstree replays a transcript into an arena-backed directory tree.
//
// All nodes live in one slice owned by the Tree. Parent and child links are
// plain indices into that slice, so the tree can be walked in both directions
// without any node owning another.
package fstree

import (
	"iter"

	"github.com/michaelscutari/dugsh/internal/entry"
	"github.com/michaelscutari/dugsh/internal/pathutil"
)

// ID addresses a node in a Tree.
type ID int32

// None is the parent of the root.
const None ID = -1

// RootID is the root directory of every Tree.
const RootID ID = 0

type node struct {
	name     string
	kind     entry.Kind
	size     int64
	parent   ID
	children []ID          // discovery order
	byName   map[string]ID // dirs only
}

// Tree is a rooted directory tree. Values handed out by Build are never
// mutated again; only the owning Builder appends to it.
type Tree struct {
	nodes []node
}

func newTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, node{
		name:   pathutil.Root,
		kind:   entry.KindDir,
		parent: None,
		byName: make(map[string]ID),
	})
	return t
}

// Root returns the root directory.
func (t *Tree) Root() ID { return RootID }

// Len returns the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Name returns the node's name. The root is named "/".
func (t *Tree) Name(id ID) string { return t.nodes[id].name }

// Kind returns whether the node is a file or a directory.
func (t *Tree) Kind(id ID) entry.Kind { return t.nodes[id].kind }

// IsDir reports whether id is a directory.
func (t *Tree) IsDir(id ID) bool { return t.nodes[id].kind == entry.KindDir }

// Size returns the stored size: the byte size for a file, zero for a directory.
func (t *Tree) Size(id ID) int64 { return t.nodes[id].size }

// Parent returns the parent directory, or false for the root.
func (t *Tree) Parent(id ID) (ID, bool) {
	p := t.nodes[id].parent
	return p, p != None
}

// Child looks up a direct child of dir by name.
func (t *Tree) Child(dir ID, name string) (ID, bool) {
	id, ok := t.nodes[dir].byName[name]
	return id, ok
}

// Children yields the direct children of dir in discovery order.
func (t *Tree) Children(dir ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, c := range t.nodes[dir].children {
			if !yield(c) {
				return
			}
		}
	}
}

// NumChildren returns the number of direct children of dir.
func (t *Tree) NumChildren(dir ID) int { return len(t.nodes[dir].children) }

// Depth returns the number of edges between id and the root.
func (t *Tree) Depth(id ID) int {
	d := 0
	for p := t.nodes[id].parent; p != None; p = t.nodes[p].parent {
		d++
	}
	return d
}

// Path returns the slash-separated path of id, e.g. "/a/e".
func (t *Tree) Path(id ID) string {
	if id == RootID {
		return pathutil.Root
	}
	var names []string
	for cur := id; cur != RootID; cur = t.nodes[cur].parent {
		names = append(names, t.nodes[cur].name)
	}
	p := pathutil.Root
	for i := len(names) - 1; i >= 0; i-- {
		p = pathutil.Join(p, names[i])
	}
	return p
}

// Lookup resolves a path produced by Path back to a node.
func (t *Tree) Lookup(p string) (ID, bool) {
	p = pathutil.Normalize(p)
	cur := RootID
	if p == pathutil.Root {
		return cur, true
	}
	start := 1
	for i := 1; i <= len(p); i++ {
		if i < len(p) && p[i] != '/' {
			continue
		}
		next, ok := t.Child(cur, p[start:i])
		if !ok {
			return None, false
		}
		cur = next
		start = i + 1
	}
	return cur, true
}

func (t *Tree) add(parent ID, name string, kind entry.Kind, size int64) ID {
	id := ID(len(t.nodes))
	n := node{name: name, kind: kind, size: size, parent: parent}
	if kind == entry.KindDir {
		n.byName = make(map[string]ID)
	}
	t.nodes = append(t.nodes, n)
	p := &t.nodes[parent]
	p.children = append(p.children, id)
	p.byName[name] = id
	return id
}
