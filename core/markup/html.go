package markup

import (
	"bufio"
	"io"
	"strings"

	"github.com/yuin/goldmark/util"
)

// htmlShape is the element and fixed classes a kind renders as.
type htmlShape struct {
	tag     string
	classes string
	void    bool
}

var htmlShapes = map[Kind]htmlShape{
	KindSpan:    {tag: "span"},
	KindComment: {tag: "span", classes: "comment"},
	KindIcon:    {tag: "i", classes: "icon"},
	KindBreak:   {tag: "br", void: true},
	KindPre:     {tag: "pre"},
	KindDivider: {tag: "i", classes: "icon divider right chevron"},
	KindBlock:   {tag: "div"},
	KindPanel:   {tag: "div", classes: "ui segment step"},
	KindSection: {tag: "div", classes: "section"},
	KindTable:   {tag: "table", classes: "ui unstackable compact table"},
	KindRow:     {tag: "tr"},
	KindHead:    {tag: "th"},
	KindCell:    {tag: "td"},
	KindCard:    {tag: "div", classes: "ui card"},
}

// WriteHTML writes n as an HTML fragment using the class vocabulary of the
// Semantic UI trace page: roles become classes, field separators become
// &nbsp; and icons become <i class="icon ..."> elements.
func WriteHTML(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeHTML(bw, n)
	return bw.Flush()
}

// HTML is WriteHTML into a string.
func HTML(n *Node) string {
	var b strings.Builder
	_ = WriteHTML(&b, n)
	return b.String()
}

func writeHTML(w *bufio.Writer, n *Node) {
	switch n.Kind {
	case KindText:
		_, _ = w.Write(util.EscapeHTML([]byte(n.Lit)))
		return
	case KindSep:
		_, _ = w.WriteString("&nbsp;")
		return
	}

	shape, ok := htmlShapes[n.Kind]
	if !ok {
		shape = htmlShapes[KindSpan]
	}
	_, _ = w.WriteString("<" + shape.tag)
	if class := classAttr(shape.classes, n.Roles); class != "" {
		_, _ = w.WriteString(` class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(class)))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(">")
	if shape.void {
		return
	}
	for _, c := range n.Children {
		writeHTML(w, c)
	}
	_, _ = w.WriteString("</" + shape.tag + ">")
}

func classAttr(fixed string, roles []string) string {
	parts := make([]string, 0, len(roles)+1)
	if fixed != "" {
		parts = append(parts, fixed)
	}
	parts = append(parts, roles...)
	return strings.Join(parts, " ")
}
