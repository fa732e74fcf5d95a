// MoView - Movie Review and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moview

package sentiment

import (
	"strings"
)

// matcher is an Aho-Corasick automaton over a fixed word list. It finds every
// word occurring anywhere in a text (substring semantics, so "love" matches
// "loved") in a single pass of O(n + z) where n is the text length and z the
// number of hits.
//
// A matcher is immutable once built and safe for concurrent use.
type matcher struct {
	root  *acNode
	words []string
}

// acNode is one state of the automaton.
type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices into matcher.words ending here
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// newMatcher builds a case-insensitive matcher. Empty and duplicate words are
// ignored.
func newMatcher(words []string) *matcher {
	m := &matcher{root: newACNode()}

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		m.insert(len(m.words), w)
		m.words = append(m.words, w)
	}

	m.buildFailureLinks()
	return m
}

func (m *matcher) insert(index int, word string) {
	node := m.root
	for _, ch := range word {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// buildFailureLinks links every node to its longest proper suffix (BFS).
func (m *matcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// distinct returns how many different words occur in text. Repeats of the
// same word count once.
func (m *matcher) distinct(text string) int {
	if len(m.words) == 0 {
		return 0
	}

	found := make([]bool, len(m.words))
	count := 0
	node := m.root

	for _, ch := range strings.ToLower(text) {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = m.root
			continue
		}
		node = node.children[ch]

		for _, idx := range node.output {
			if !found[idx] {
				found[idx] = true
				count++
			}
		}
	}
	return count
}
