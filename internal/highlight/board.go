package highlight

import (
	"strings"
	"sync"

	"golang.org/x/net/html"

	"bridge/internal/domain"
)

// ActiveClass is added to the single marker currently highlighted.
const ActiveClass = "active"

// Activation describes the visual effect of a hover.
type Activation struct {
	Action   int    `json:"action"`
	Changed  bool   `json:"changed"`
	ScrollTo string `json:"scroll_to,omitempty"`
}

// Board is the interactive state shared by the translation and summary views
// of one result: which marker is active and which actions are marked done.
// The two concerns are independent.
type Board struct {
	mu     sync.Mutex
	markup string
	index  *Index
	active int
	done   []bool
}

// NewBoard creates a board with nothing active and nothing done.
func NewBoard(markup string, index *Index) *Board {
	return &Board{
		markup: markup,
		index:  index,
		active: -1,
		done:   make([]bool, index.ActionCount()),
	}
}

// Index returns the lookup the board was built on.
func (b *Board) Index() *Index {
	return b.index
}

// Hover activates the marker for action i after clearing any other. When the
// markup has no marker for i nothing changes.
func (b *Board) Hover(i int) Activation {
	m, ok := b.index.Marker(i)
	if !ok {
		return Activation{Action: i}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = i
	return Activation{Action: i, Changed: true, ScrollTo: m.ID}
}

// Leave clears the active marker.
func (b *Board) Leave() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = -1
}

// Active returns the action whose marker is active.
func (b *Board) Active() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active, b.active >= 0
}

// ToggleDone flips the done flag of action i and returns the new value.
func (b *Board) ToggleDone(i int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i < 0 || i >= len(b.done) {
		return false, domain.ErrActionOutOfRange
	}
	b.done[i] = !b.done[i]
	return b.done[i], nil
}

// Done returns a copy of the done flags.
func (b *Board) Done() []bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]bool, len(b.done))
	copy(out, b.done)
	return out
}

// Render returns the markup with ActiveClass on exactly the active marker.
func (b *Board) Render() (string, error) {
	active, ok := b.Active()
	activeID := ""
	if ok {
		activeID = MarkerID(active)
	}

	nodes, err := parseFragment(b.markup)
	if err != nil {
		return "", err
	}

	// only the first element per id is the marker; later duplicates never light up
	seen := make(map[string]bool)
	var sb strings.Builder
	for _, n := range nodes {
		walk(n, func(el *html.Node) {
			id := attr(el, "id")
			if _, indexed := b.index.ActionFor(id); !indexed {
				return
			}
			first := !seen[id]
			seen[id] = true
			setClass(el, ActiveClass, first && id == activeID)
		})
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func setClass(n *html.Node, class string, on bool) {
	for i, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		fields := strings.Fields(a.Val)
		kept := fields[:0]
		for _, f := range fields {
			if f != class {
				kept = append(kept, f)
			}
		}
		if on {
			kept = append(kept, class)
		}
		n.Attr[i].Val = strings.Join(kept, " ")
		return
	}
	if on {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
}
