// Package xmltree parses FLEx and LIFT XML into a navigable tree.
//
// Child lookups always return slices, whatever the cardinality in the
// document, so callers never special-case a single child. All character data
// is normalized to Unicode NFC.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Node is one XML element.
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node

	text strings.Builder
}

// Parse reads an XML document and returns its root element. Namespace
// prefixes are dropped from element and attribute names.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var stack []*Node
	var root *Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				n.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parsing xml: no root element")
	}
	return root, nil
}

// ParseFile opens and parses path.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Attr returns the named attribute or "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// All returns the direct children with the given name.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first direct child with the given name, or nil.
func (n *Node) First(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Path descends through the named levels and returns every node reached,
// in document order. Path("paragraphs", "paragraph") returns all paragraphs
// of all paragraphs containers.
func (n *Node) Path(names ...string) []*Node {
	level := []*Node{n}
	for _, name := range names {
		var next []*Node
		for _, x := range level {
			next = append(next, x.All(name)...)
		}
		level = next
	}
	return level
}

// Text returns the character data directly inside n, NFC normalized.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return norm.NFC.String(n.text.String())
}

// InnerText returns the character data of n and all descendants.
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.innerText(&b)
	return norm.NFC.String(b.String())
}

func (n *Node) innerText(b *strings.Builder) {
	b.WriteString(n.text.String())
	for _, c := range n.Children {
		c.innerText(b)
	}
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
