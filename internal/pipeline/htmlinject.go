package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrPageParse indicates a reference page could not be parsed or rendered.
var ErrPageParse = errors.New("failed to parse reference page")

// styleMarkerAttr marks the <style> element injected into a page.
const styleMarkerAttr = "data-docsplice"

// Page is a parsed reference page ready for block insertion.
type Page struct {
	doc *html.Node
}

// MemberAnchor is an API member located on a page.
type MemberAnchor struct {
	// Name is the anchor name with spaces removed, e.g. "setVolume(float,float)".
	Name string
	// Node is the member container; documentation is inserted after it.
	Node *html.Node
}

// ParsePage parses a complete HTML document.
func ParsePage(content []byte) (*Page, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageParse, err)
	}
	return &Page{doc: doc}, nil
}

// Render serializes the page back to HTML.
func (p *Page) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, p.doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageParse, err)
	}
	return buf.Bytes(), nil
}

// InjectStyle appends a <style> block as the last child of <head>.
// Returns false if the page has no <head> or already carries the style.
func (p *Page) InjectStyle(css string) bool {
	head := findFirst(p.doc, func(n *html.Node) bool { return n.DataAtom == atom.Head })
	if head == nil {
		return false
	}
	existing := findFirst(head, func(n *html.Node) bool {
		return n.DataAtom == atom.Style && hasAttr(n, styleMarkerAttr)
	})
	if existing != nil {
		return false
	}

	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: styleMarkerAttr}},
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: sanitizeCSS(css)})
	head.AppendChild(style)
	return true
}

// RemoveStyle deletes a <style> block previously added by InjectStyle.
func (p *Page) RemoveStyle() bool {
	style := findFirst(p.doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Style && hasAttr(n, styleMarkerAttr)
	})
	if style == nil {
		return false
	}
	style.Parent.RemoveChild(style)
	return true
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// RemoveBlocks deletes previously inserted <div> blocks carrying class.
// Returns the number of blocks removed.
func (p *Page) RemoveBlocks(class string) int {
	var blocks []*html.Node
	walk(p.doc, func(n *html.Node) bool {
		if n.DataAtom == atom.Div && hasClass(n, class) {
			blocks = append(blocks, n)
			return false
		}
		return true
	})
	for _, b := range blocks {
		b.Parent.RemoveChild(b)
	}
	return len(blocks)
}

// ClassAnchor returns the first element carrying sectionClass, or nil.
// Class documentation is inserted before it.
func (p *Page) ClassAnchor(sectionClass string) *html.Node {
	return findFirst(p.doc, func(n *html.Node) bool { return hasClass(n, sectionClass) })
}

// MemberAnchors finds every <pre class=signatureClass> whose parent is a
// <div class=apiClass> directly preceded by an <a name="..."> element.
func (p *Page) MemberAnchors(apiClass, signatureClass string) []MemberAnchor {
	var anchors []MemberAnchor
	walk(p.doc, func(n *html.Node) bool {
		if n.DataAtom != atom.Pre || !hasClass(n, signatureClass) {
			return true
		}
		container := n.Parent
		if container == nil || container.DataAtom != atom.Div || !hasClass(container, apiClass) {
			return true
		}
		prev := previousElement(container)
		if prev == nil || prev.DataAtom != atom.A {
			return true
		}
		name, ok := attr(prev, "name")
		if !ok {
			return true
		}
		anchors = append(anchors, MemberAnchor{
			Name: NormalizeAnchorName(name),
			Node: container,
		})
		return true
	})
	return anchors
}

// NormalizeAnchorName removes spaces from a member anchor name so that
// "setVolume(float, float)" and "setVolume(float,float)" match.
func NormalizeAnchorName(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

// InsertBefore parses fragment and inserts its nodes before target.
func InsertBefore(target *html.Node, fragment string) error {
	nodes, err := parseFragment(target, fragment)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		target.Parent.InsertBefore(n, target)
	}
	return nil
}

// InsertAfter parses fragment and inserts its nodes after target.
func InsertAfter(target *html.Node, fragment string) error {
	nodes, err := parseFragment(target, fragment)
	if err != nil {
		return err
	}
	next := target.NextSibling
	for _, n := range nodes {
		target.Parent.InsertBefore(n, next)
	}
	return nil
}

// parseFragment parses fragment in the context of target's parent.
func parseFragment(target *html.Node, fragment string) ([]*html.Node, error) {
	if target == nil || target.Parent == nil {
		return nil, fmt.Errorf("%w: insertion target has no parent", ErrPageParse)
	}

	context := target.Parent
	if context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageParse, err)
	}
	return nodes, nil
}

// walk visits n and its descendants depth-first.
// Returning false from visit skips the node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if n.Type == html.ElementNode && !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// findFirst returns the first element in document order matching match.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// previousElement returns the closest preceding element sibling of n.
func previousElement(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}

func hasClass(n *html.Node, class string) bool {
	if class == "" {
		return false
	}
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
