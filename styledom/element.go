package styledom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/zam-dot/contrastscope/contrast"
)

// DefaultTextSelector lists the elements audited when no selector is given.
const DefaultTextSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, a, button, label, span, " +
	"td, th, dt, dd, figcaption, small, strong, em, b, i, code, pre, summary, legend"

// skipContainers never render their text.
var skipContainers = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// Element is one rendered element. It satisfies contrast.TextNode.
type Element struct {
	doc   *Document
	node  *html.Node
	style *computed
}

var _ contrast.TextNode = (*Element)(nil)

// TextElements returns the visible elements matching selector that own a
// non-empty text node, in document order.
func (d *Document) TextElements(selector string) []*Element {
	if strings.TrimSpace(selector) == "" {
		selector = DefaultTextSelector
	}

	var out []*Element
	d.doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		n := s.Get(0)
		if n.Type != html.ElementNode || insideSkipped(n) || !hasOwnText(n) {
			return
		}
		e := d.element(n)
		if e == nil || e.style.hidden {
			return
		}
		out = append(out, e)
	})
	return out
}

// TextNodes adapts TextElements for contrast.Audit.
func (d *Document) TextNodes(selector string) []contrast.TextNode {
	elems := d.TextElements(selector)
	nodes := make([]contrast.TextNode, len(elems))
	for i, e := range elems {
		nodes[i] = e
	}
	return nodes
}

func insideSkipped(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && skipContainers[p.Data] {
			return true
		}
	}
	return false
}

func hasOwnText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

// Background returns the element's own background-color.
func (e *Element) Background() (contrast.Color, bool, error) {
	c, ok, err := parseBackground(e.style.background)
	if err != nil {
		return contrast.Color{}, false, fmt.Errorf("%s background: %w", e.Tag(), err)
	}
	return c, ok, nil
}

// Parent returns the enclosing element, or nil at <html>.
func (e *Element) Parent() contrast.StyledNode {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	pe := e.doc.element(p)
	if pe == nil {
		return nil
	}
	return pe
}

// TextColor returns the computed (possibly inherited) text color.
func (e *Element) TextColor() (contrast.Color, error) {
	c, ok, err := contrast.ParseCSSColor(e.style.color)
	if err != nil {
		return contrast.Color{}, err
	}
	if !ok {
		return contrast.Color{}, fmt.Errorf("%s: text color is transparent", e.Tag())
	}
	return c, nil
}

func (e *Element) FontSizePx() float64 { return e.style.fontPx }

func (e *Element) Bold() bool { return e.style.bold }

func (e *Element) Tag() string { return e.node.Data }

// Text returns the element's direct text, whitespace collapsed.
func (e *Element) Text() string {
	var parts []string
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			parts = append(parts, strings.Fields(c.Data)...)
		}
	}
	return strings.Join(parts, " ")
}

// Label identifies the element as tag#id.class "text".
func (e *Element) Label() string {
	var b strings.Builder
	b.WriteString(e.node.Data)
	if id, ok := attr(e.node, "id"); ok && id != "" {
		b.WriteString("#" + id)
	}
	if class, ok := attr(e.node, "class"); ok {
		classes := strings.Fields(class)
		if len(classes) > 2 {
			classes = classes[:2]
		}
		for _, c := range classes {
			b.WriteString("." + c)
		}
	}

	text := e.Text()
	if runes := []rune(text); len(runes) > 40 {
		text = string(runes[:37]) + "..."
	}
	if text != "" {
		fmt.Fprintf(&b, " %q", text)
	}
	return b.String()
}
