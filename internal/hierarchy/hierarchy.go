// Package hierarchy stamps each classified block with its enclosing section
// path by folding a heading stack over the blocks in document order. The
// stack is an explicit value scoped to one pass, so multiple documents can
// be processed concurrently, each with its own stack.
package hierarchy

import (
	"strings"

	"github.com/dgallion1/blocksearch/internal/document"
)

// Separator joins heading titles into a section path, most-general first.
const Separator = " > "

// Entry is one open heading on the stack.
type Entry struct {
	Level int
	Title string
}

// Stack holds at most one entry per heading level. The zero value is an
// empty stack ready for use.
type Stack struct {
	entries []Entry
}

// Observe updates the stack for one block. An h1 discards all open sections;
// an h2 closes any open h2/h3 but keeps the enclosing h1; an h3 closes only
// an open h3. Body and skip blocks leave the stack unchanged.
func (s *Stack) Observe(b document.Block) {
	switch b.Type {
	case document.TypeH1:
		s.entries = []Entry{{Level: 1, Title: b.Text}}
	case document.TypeH2:
		s.truncate(2)
		s.entries = append(s.entries, Entry{Level: 2, Title: b.Text})
	case document.TypeH3:
		s.truncate(3)
		s.entries = append(s.entries, Entry{Level: 3, Title: b.Text})
	}
}

// truncate removes entries at or above the given level.
func (s *Stack) truncate(level int) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Level < level {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// Path returns the open heading titles joined in level order, or "" when no
// section is open.
func (s *Stack) Path() string {
	if len(s.entries) == 0 {
		return ""
	}
	titles := make([]string, len(s.entries))
	for i, e := range s.entries {
		titles[i] = e.Title
	}
	return strings.Join(titles, Separator)
}

// Apply walks blocks in document order and sets SectionPath on every block,
// headings included. It must run exactly once per document, sequentially:
// each step depends on the stack state left by the previous block.
func Apply(blocks []document.Block) {
	var stack Stack
	for i := range blocks {
		stack.Observe(blocks[i])
		blocks[i].SectionPath = stack.Path()
	}
}
