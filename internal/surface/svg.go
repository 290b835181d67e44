package surface

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"
)

// WriteSVG serialises a vector surface as a standalone SVG document. Hover
// tooltips are emitted as <title> children.
func (s *Surface) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	s.root.Attr("xmlns", "http://www.w3.org/2000/svg")
	writeNode(bw, s.root)
	return bw.Flush()
}

// SVG returns the serialised surface.
func (s *Surface) SVG() string {
	var sb strings.Builder
	_ = s.WriteSVG(&sb)
	return sb.String()
}

func writeNode(w *bufio.Writer, n *Node) {
	w.WriteString("<")
	w.WriteString(n.Tag)
	for _, k := range sortedKeys(n.attrs) {
		writeAttr(w, k, n.attrs[k])
	}
	if len(n.style) > 0 {
		var style strings.Builder
		for _, k := range sortedKeys(n.style) {
			style.WriteString(k)
			style.WriteString(":")
			style.WriteString(n.style[k])
			style.WriteString(";")
		}
		writeAttr(w, "style", style.String())
	}

	hasTitle := n.hover != nil && len(n.hover.Tooltip) > 0
	if len(n.children) == 0 && n.text == "" && !hasTitle {
		w.WriteString("/>")
		return
	}
	w.WriteString(">")
	if hasTitle {
		w.WriteString("<title>")
		xml.EscapeText(w, []byte(strings.Join(n.hover.Tooltip, "\n")))
		w.WriteString("</title>")
	}
	if n.text != "" {
		xml.EscapeText(w, []byte(n.text))
	}
	for _, c := range n.children {
		writeNode(w, c)
	}
	w.WriteString("</")
	w.WriteString(n.Tag)
	w.WriteString(">")
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteString(" ")
	w.WriteString(name)
	w.WriteString(`="`)
	xml.EscapeText(w, []byte(value))
	w.WriteString(`"`)
}
