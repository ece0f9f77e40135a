/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "github.com/google/uuid"

// Layer is an ordered list of nodes; later nodes draw on top.
// It is not safe for concurrent use; the editor mutates it from its event loop.
type Layer struct {
	id    string
	Name  string
	nodes []Node
}

// NewLayer creates an empty layer with an id of the form <prefix>-<uuid>.
func NewLayer(prefix string) *Layer {
	return &Layer{id: prefix + "-" + uuid.NewString(), Name: prefix}
}

func (l *Layer) ID() string { return l.id }
func (l *Layer) Len() int   { return len(l.nodes) }

// Add appends n unless it is already present.
func (l *Layer) Add(n Node) {
	if n == nil || l.index(n) >= 0 {
		return
	}
	l.nodes = append(l.nodes, n)
}

// Remove deletes n and reports whether it was present.
func (l *Layer) Remove(n Node) bool {
	i := l.index(n)
	if i < 0 {
		return false
	}
	l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
	return true
}

func (l *Layer) index(n Node) int {
	for i, c := range l.nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// Nodes returns a copy of the layer contents in draw order.
func (l *Layer) Nodes() []Node { return append([]Node(nil), l.nodes...) }

// Lookup returns the node with the given id.
func (l *Layer) Lookup(id string) (Node, bool) {
	for _, n := range l.nodes {
		if n.ID() == id {
			return n, true
		}
	}
	return nil, false
}

// Find returns the nodes of category c in draw order.
func (l *Layer) Find(c Category) []Node {
	var out []Node
	for _, n := range l.nodes {
		if n.Category() == c {
			out = append(out, n)
		}
	}
	return out
}

// Count returns how many nodes of category c the layer holds.
func (l *Layer) Count(c Category) int {
	k := 0
	for _, n := range l.nodes {
		if n.Category() == c {
			k++
		}
	}
	return k
}

// DestroyAll removes every node of category c and returns how many were removed.
func (l *Layer) DestroyAll(c Category) int {
	kept := l.nodes[:0]
	removed := 0
	for _, n := range l.nodes {
		if n.Category() == c {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	// drop references held by the tail of the backing array
	for i := len(kept); i < len(l.nodes); i++ {
		l.nodes[i] = nil
	}
	l.nodes = kept
	return removed
}
