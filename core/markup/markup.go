// Package markup is the output side of the renderer: an append-only tree of
// nodes, each with a layout kind and a set of semantic roles, plus sinks that
// turn a finished tree into plain text, HTML or ANSI-styled text.
//
// Renderers write through the Element interface only, so a caller that does
// not care about some part of the output (say, the breadcrumb) can hand in
// Discard instead of a real node.
package markup

// Kind is the layout class of a node. It decides how sinks place the node;
// roles decide how it is styled.
type Kind string

const (
	KindText    Kind = "text"    // literal text leaf
	KindSep     Kind = "sep"     // field separator leaf (one space)
	KindSpan    Kind = "span"    // inline group
	KindComment Kind = "comment" // inline annotation, shown as "# ..."
	KindIcon    Kind = "icon"    // glyph named by its roles; no text form
	KindBreak   Kind = "break"   // line break
	KindPre     Kind = "pre"     // preformatted text, always ends a line
	KindDivider Kind = "divider" // breadcrumb divider

	KindBlock   Kind = "block"   // starts on its own line
	KindPanel   Kind = "panel"   // one trace step
	KindSection Kind = "section" // one breadcrumb label
	KindTable   Kind = "table"
	KindRow     Kind = "row"
	KindHead    Kind = "head" // header cell
	KindCell    Kind = "cell"
	KindCard    Kind = "card"
)

// Block reports whether nodes of this kind start on a fresh line.
func (k Kind) Block() bool {
	switch k {
	case KindBlock, KindPanel, KindTable, KindRow, KindCard:
		return true
	}
	return false
}

// Element is the builder interface renderers write to.
type Element interface {
	// Open appends a child node and returns it.
	Open(kind Kind, roles ...string) Element
	// Text appends literal text.
	Text(s string)
	// Sep appends a field separator.
	Sep()
	// Tag adds roles to the element itself.
	Tag(roles ...string)
}

// Node is the concrete tree. The zero value is an empty span.
type Node struct {
	Kind     Kind
	Roles    []string
	Lit      string // KindText only
	Children []*Node
}

// New returns an empty root node of the given kind.
func New(kind Kind, roles ...string) *Node {
	return &Node{Kind: kind, Roles: roles}
}

func (n *Node) Open(kind Kind, roles ...string) Element {
	c := &Node{Kind: kind, Roles: roles}
	n.Children = append(n.Children, c)
	return c
}

func (n *Node) Text(s string) {
	if s == "" {
		return
	}
	// merge adjacent text so trees stay small and comparable
	if last := n.last(); last != nil && last.Kind == KindText {
		last.Lit += s
		return
	}
	n.Children = append(n.Children, &Node{Kind: KindText, Lit: s})
}

func (n *Node) Sep() {
	n.Children = append(n.Children, &Node{Kind: KindSep})
}

func (n *Node) Tag(roles ...string) {
	for _, r := range roles {
		if !n.Has(r) {
			n.Roles = append(n.Roles, r)
		}
	}
}

// Has reports whether the node carries role r.
func (n *Node) Has(r string) bool {
	for _, x := range n.Roles {
		if x == r {
			return true
		}
	}
	return false
}

func (n *Node) last() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Find returns the first node in depth-first order carrying role r, or nil.
func (n *Node) Find(r string) *Node {
	if n.Has(r) {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(r); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every node carrying role r, in depth-first order.
func (n *Node) FindAll(r string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(x *Node) {
		if x.Has(r) {
			out = append(out, x)
		}
		for _, c := range x.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Discard is an Element that drops everything written to it.
var Discard Element = discard{}

type discard struct{}

func (discard) Open(Kind, ...string) Element { return discard{} }
func (discard) Text(string)                  {}
func (discard) Sep()                         {}
func (discard) Tag(...string)                {}
