package styledom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Options control how a page is rendered before it is audited.
type Options struct {
	// ThemeClass is added to <html>, the way theme toggles switch themes.
	ThemeClass string
	// ThemeAttr is a name=value attribute set on <html>, e.g. data-theme=dark.
	ThemeAttr string
	// ColorScheme answers prefers-color-scheme media queries. Empty means light.
	ColorScheme string
}

// Document is a parsed page with its computed styles. It is a snapshot:
// reload the page to observe any change to markup or stylesheets.
type Document struct {
	doc      *goquery.Document
	rules    []rule
	styles   map[*html.Node]*computed
	elements map[*html.Node]*Element
	rootPx   float64 // computed font size of <html>, the rem base
}

// computed is the resolved style of one element.
type computed struct {
	background string
	color      string
	fontPx     float64
	bold       bool
	hidden     bool
	vars       map[string]string
}

// Load parses an HTML page and resolves the styles of every element.
func Load(r io.Reader, opts Options) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return FromGoquery(doc, opts)
}

// FromGoquery resolves styles for an already parsed document. The theme
// options mutate doc before styles are computed.
func FromGoquery(doc *goquery.Document, opts Options) (*Document, error) {
	root := doc.Find("html").First()
	if opts.ThemeClass != "" {
		root.AddClass(opts.ThemeClass)
	}
	if opts.ThemeAttr != "" {
		name, value, _ := strings.Cut(opts.ThemeAttr, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid theme attribute %q", opts.ThemeAttr)
		}
		root.SetAttr(name, strings.Trim(strings.TrimSpace(value), `"'`))
	}

	d := &Document{
		doc:      doc,
		styles:   make(map[*html.Node]*computed),
		elements: make(map[*html.Node]*Element),
	}

	order := 0
	doc.Find("style").Each(func(i int, s *goquery.Selection) {
		if media, ok := s.Attr("media"); ok && !mediaApplies(media, opts) {
			return
		}
		d.rules = append(d.rules, parseStylesheet(s.Text(), &order, opts)...)
	})

	rootStyle := &computed{
		color:  defaultColor,
		fontPx: defaultFontPx,
		vars:   map[string]string{},
	}
	for _, n := range doc.Nodes {
		d.compute(n, rootStyle)
	}
	return d, nil
}

// compute resolves n against its parent's computed style, then recurses.
func (d *Document) compute(n *html.Node, parent *computed) {
	if n.Type == html.ElementNode {
		parent = d.resolve(n, parent)
		d.styles[n] = parent
		if n.Data == "html" && d.rootPx == 0 {
			d.rootPx = parent.fontPx
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.compute(c, parent)
	}
}

func (d *Document) resolve(n *html.Node, parent *computed) *computed {
	decl := d.declare(n)

	s := &computed{
		color:  parent.color,
		fontPx: parent.fontPx,
		bold:   parent.bold,
		hidden: parent.hidden,
		vars:   parent.vars,
	}

	// custom properties inherit; copy only when this element declares some
	var own map[string]string
	for prop, v := range decl.values {
		if strings.HasPrefix(prop, "--") {
			if own == nil {
				own = make(map[string]string, len(parent.vars)+1)
				for k, pv := range parent.vars {
					own[k] = pv
				}
			}
			own[prop] = strings.TrimSpace(v)
		}
	}
	if own != nil {
		s.vars = own
	}

	value := func(prop string) (string, bool) {
		raw, ok := decl.values[prop]
		if !ok {
			return "", false
		}
		v, ok := resolveVars(raw, s.vars, 0)
		if !ok || isInheritKeyword(v) {
			return "", false
		}
		return v, true
	}

	if v, ok := value("color"); ok && !strings.EqualFold(v, "currentcolor") {
		if strings.EqualFold(v, "initial") {
			v = defaultColor
		}
		s.color = normalizeColor(v)
	}

	if v, ok := value("background-color"); ok {
		s.background = v
	} else if v, ok := value("background"); ok {
		s.background = backgroundColorFromShorthand(v)
	}
	if raw, ok := decl.values["background-color"]; ok && isInheritKeyword(raw) {
		s.background = parent.background
	}

	if v, ok := value("font-size"); ok {
		rootPx := d.rootPx
		if rootPx == 0 {
			// <html> itself: rem is relative to the initial size
			rootPx = defaultFontPx
		}
		if px, ok := parseFontSize(v, parent.fontPx, rootPx); ok {
			s.fontPx = px
		}
	}
	if v, ok := value("font-weight"); ok {
		s.bold = parseFontWeight(v, parent.bold)
	}

	if v, ok := value("display"); ok && strings.EqualFold(v, "none") {
		s.hidden = true
	}
	if v, ok := value("visibility"); ok && strings.EqualFold(v, "hidden") {
		s.hidden = true
	}
	if _, ok := attr(n, "hidden"); ok {
		s.hidden = true
	}
	return s
}

// element returns the single Element wrapping n.
func (d *Document) element(n *html.Node) *Element {
	if e, ok := d.elements[n]; ok {
		return e
	}
	style, ok := d.styles[n]
	if !ok {
		return nil
	}
	e := &Element{doc: d, node: n, style: style}
	d.elements[n] = e
	return e
}

// Goquery exposes the underlying document, e.g. to read the page title.
func (d *Document) Goquery() *goquery.Document {
	return d.doc
}

// Title returns the trimmed <title> text.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}
