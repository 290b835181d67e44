package surface

import (
	"sort"
	"strconv"
	"strings"
)

// Node is one element of a vector surface's retained scene graph.
// Setters return the node so construction reads like a chain.
type Node struct {
	Tag string

	attrs    map[string]string
	style    map[string]string
	text     string
	key      string
	children []*Node
	parent   *Node

	hover     *Hover
	baseStyle map[string]string
}

// Hover describes what happens while the cursor is over a node: extra style
// is applied and a tooltip is shown next to the cursor.
type Hover struct {
	Style   map[string]string
	Restore map[string]string
	Tooltip []string
}

func newNode(tag string) *Node {
	return &Node{Tag: tag, attrs: map[string]string{}, style: map[string]string{}}
}

// Append creates a child element.
func (n *Node) Append(tag string) *Node {
	child := newNode(tag)
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Attr sets an attribute.
func (n *Node) Attr(name, value string) *Node {
	n.attrs[name] = value
	return n
}

// AttrF sets a numeric attribute.
func (n *Node) AttrF(name string, value float64) *Node {
	return n.Attr(name, formatFloat(value))
}

// Class sets the class attribute.
func (n *Node) Class(class string) *Node {
	return n.Attr("class", class)
}

// Style sets an inline style property.
func (n *Node) Style(name, value string) *Node {
	n.style[name] = value
	return n
}

// Text sets the node's text content.
func (n *Node) Text(text string) *Node {
	n.text = text
	return n
}

// Keyed records the data key the node is bound to.
func (n *Node) Keyed(key string) *Node {
	n.key = key
	return n
}

// OnHover attaches hover behaviour.
func (n *Node) OnHover(h Hover) *Node {
	n.hover = &h
	return n
}

// GetAttr returns an attribute value or "".
func (n *Node) GetAttr(name string) string {
	return n.attrs[name]
}

// GetAttrF returns a numeric attribute, zero when absent.
func (n *Node) GetAttrF(name string) float64 {
	f, _ := strconv.ParseFloat(n.attrs[name], 64)
	return f
}

// GetStyle returns a style property or "".
func (n *Node) GetStyle(name string) string {
	return n.style[name]
}

// TextContent returns the node's own text.
func (n *Node) TextContent() string {
	return n.text
}

// Key returns the bound data key.
func (n *Node) Key() string {
	return n.key
}

// HoverSpec returns the attached hover behaviour, if any.
func (n *Node) HoverSpec() (Hover, bool) {
	if n.hover == nil {
		return Hover{}, false
	}
	return *n.hover, true
}

// HasClass reports whether class is one of the node's classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.attrs["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

// Children returns the direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// Remove detaches the node from its parent.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// RemoveChildren drops every child.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// SelectAll returns every descendant matching pred, in document order.
func (n *Node) SelectAll(pred func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.children {
			if pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// SelectClass returns every descendant carrying class.
func (n *Node) SelectClass(class string) []*Node {
	return n.SelectAll(func(c *Node) bool { return c.HasClass(class) })
}

// SelectTag returns every descendant with the given tag.
func (n *Node) SelectTag(tags ...string) []*Node {
	return n.SelectAll(func(c *Node) bool {
		for _, t := range tags {
			if c.Tag == t {
				return true
			}
		}
		return false
	})
}

// JoinKeyed binds data to the children of parent that carry class, one node
// per distinct key. A datum whose key is already bound updates that node in
// place, so duplicate keys never produce duplicate elements. Bound nodes whose
// key is absent from data are removed.
func JoinKeyed[T any](parent *Node, tag, class string, data []T, key func(T) string, apply func(*Node, T)) []*Node {
	existing := make(map[string]*Node)
	for _, c := range parent.children {
		if c.HasClass(class) && c.key != "" {
			existing[c.key] = c
		}
	}

	bound := make(map[string]*Node, len(data))
	var order []*Node
	for _, d := range data {
		k := key(d)
		node, ok := bound[k]
		if !ok {
			if node, ok = existing[k]; !ok {
				node = parent.Append(tag).Class(class).Keyed(k)
			}
			bound[k] = node
			order = append(order, node)
		}
		apply(node, d)
	}

	for k, node := range existing {
		if _, ok := bound[k]; !ok {
			node.Remove()
		}
	}
	return order
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
