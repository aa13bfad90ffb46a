// Package highlight links the inline markers in translated markup to the
// summary's action list.
//
// The collaborator tags the phrase each action refers to with an element whose
// id is "action-ref-N". Nothing here matches text: an Index is built once per
// result and answers marker/action lookups in both directions.
package highlight

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bridge/internal/parser"
)

// Marker is one tagged element in the translated markup.
type Marker struct {
	ID     string `json:"id"`
	Action int    `json:"action"`
	Text   string `json:"text"`
}

// Index is the immutable bidirectional map between actions and markers.
type Index struct {
	actions  int
	byAction map[int]Marker
	byID     map[string]int
	Warnings []string
}

// MarkerID returns the element id that refers to action i.
func MarkerID(i int) string {
	return parser.MarkerIDPrefix + strconv.Itoa(i)
}

// BuildIndex scans markup for action markers. Dangling references, malformed
// ids and duplicates are recorded in Warnings and left out of the index; they
// never cause an error.
func BuildIndex(markup string, actions []string) *Index {
	ix := &Index{
		actions:  len(actions),
		byAction: make(map[int]Marker),
		byID:     make(map[string]int),
	}

	nodes, err := parseFragment(markup)
	if err != nil {
		ix.warn("markup could not be parsed: %v", err)
		return ix
	}

	for _, n := range nodes {
		walk(n, func(el *html.Node) {
			id := attr(el, "id")
			if !strings.HasPrefix(id, parser.MarkerIDPrefix) {
				return
			}
			suffix := strings.TrimPrefix(id, parser.MarkerIDPrefix)
			action, err := strconv.Atoi(suffix)
			if err != nil || action < 0 || strconv.Itoa(action) != suffix {
				ix.warn("malformed marker id %q", id)
				return
			}
			if action >= ix.actions {
				ix.warn("marker %q has no matching action (%d actions)", id, ix.actions)
				return
			}
			if _, dup := ix.byAction[action]; dup {
				ix.warn("duplicate marker %q ignored", id)
				return
			}
			ix.byAction[action] = Marker{ID: id, Action: action, Text: strings.TrimSpace(textOf(el))}
			ix.byID[id] = action
		})
	}

	for _, w := range ix.Warnings {
		log.Warnf("highlight.BuildIndex: %s", w)
	}
	return ix
}

func (ix *Index) warn(format string, args ...interface{}) {
	ix.Warnings = append(ix.Warnings, fmt.Sprintf(format, args...))
}

// Marker returns the marker for action i, if the markup tagged one.
func (ix *Index) Marker(i int) (Marker, bool) {
	m, ok := ix.byAction[i]
	return m, ok
}

// ActionFor returns the action index a marker id refers to.
func (ix *Index) ActionFor(markerID string) (int, bool) {
	i, ok := ix.byID[markerID]
	return i, ok
}

// ActionCount is the length of the action list the index was built for.
func (ix *Index) ActionCount() int {
	return ix.actions
}

// Markers returns all indexed markers ordered by action.
func (ix *Index) Markers() []Marker {
	out := make([]Marker, 0, len(ix.byAction))
	for _, m := range ix.byAction {
		out = append(out, m)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Action < out[b].Action })
	return out
}

func parseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(markup), ctx)
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
