package styledom

import (
	"log"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Declaration origins, lowest priority first.
const (
	tierUserAgent = iota
	tierAttribute
	tierSheet
	tierInline
	tierSheetImportant
	tierInlineImportant
)

type weight struct {
	tier  int
	spec  cascadia.Specificity
	order int
}

func (w weight) less(o weight) bool {
	if w.tier != o.tier {
		return w.tier < o.tier
	}
	if w.spec != o.spec {
		return w.spec.Less(o.spec)
	}
	return w.order < o.order
}

type rule struct {
	sel   cascadia.Sel
	spec  cascadia.Specificity
	order int
	decls []*css.Declaration
}

// declared collects the winning declaration per property for one element.
type declared struct {
	values  map[string]string
	weights map[string]weight
}

func newDeclared() *declared {
	return &declared{values: map[string]string{}, weights: map[string]weight{}}
}

func (d *declared) set(prop, value string, w weight) {
	prop = strings.ToLower(strings.TrimSpace(prop))
	if !strings.HasPrefix(prop, "--") {
		value = strings.TrimSpace(value)
	}
	if cur, ok := d.weights[prop]; ok && w.less(cur) {
		return
	}
	d.values[prop] = value
	d.weights[prop] = w
}

// userAgentDefaults mirrors the browser defaults that matter for contrast.
var userAgentDefaults = map[string][][2]string{
	"h1":     {{"font-size", "2em"}, {"font-weight", "bold"}},
	"h2":     {{"font-size", "1.5em"}, {"font-weight", "bold"}},
	"h3":     {{"font-size", "1.17em"}, {"font-weight", "bold"}},
	"h4":     {{"font-size", "1em"}, {"font-weight", "bold"}},
	"h5":     {{"font-size", "0.83em"}, {"font-weight", "bold"}},
	"h6":     {{"font-size", "0.67em"}, {"font-weight", "bold"}},
	"b":      {{"font-weight", "bold"}},
	"strong": {{"font-weight", "bold"}},
	"th":     {{"font-weight", "bold"}},
	"small":  {{"font-size", "smaller"}},
	"a":      {{"color", "#0000ee"}},
}

// parseStylesheet turns one <style> block into rules. order continues
// across blocks so later blocks win ties.
func parseStylesheet(text string, order *int, opts Options) []rule {
	sheet, err := parser.Parse(text)
	if err != nil {
		log.Printf("styledom: skipping stylesheet: %v", err)
		return nil
	}
	return flattenRules(sheet.Rules, order, opts)
}

func flattenRules(in []*css.Rule, order *int, opts Options) []rule {
	var out []rule
	for _, r := range in {
		switch r.Kind {
		case css.QualifiedRule:
			out = append(out, compileRule(r, order)...)
		case css.AtRule:
			if strings.EqualFold(strings.TrimPrefix(r.Name, "@"), "media") && mediaApplies(r.Prelude, opts) {
				out = append(out, flattenRules(r.Rules, order, opts)...)
			}
		}
	}
	return out
}

func compileRule(r *css.Rule, order *int) []rule {
	var out []rule
	for _, selText := range r.Selectors {
		group, err := cascadia.ParseGroup(selText)
		if err != nil {
			// interaction states like :hover do not apply to a static render
			continue
		}
		for _, sel := range group {
			if sel.PseudoElement() != "" {
				continue
			}
			*order++
			out = append(out, rule{sel: sel, spec: sel.Specificity(), order: *order, decls: r.Declarations})
		}
	}
	return out
}

// mediaApplies evaluates the media queries a static screen render can
// answer: media types and prefers-color-scheme.
func mediaApplies(prelude string, opts Options) bool {
	q := strings.ToLower(strings.Join(strings.Fields(prelude), ""))
	if strings.Contains(q, "prefers-color-scheme:") {
		scheme := opts.ColorScheme
		if scheme == "" {
			scheme = "light"
		}
		return strings.Contains(q, "prefers-color-scheme:"+scheme)
	}
	switch q {
	case "screen", "all", "onlyscreen":
		return true
	}
	return false
}

// declare gathers every declaration that applies to n, tier by tier.
func (d *Document) declare(n *html.Node) *declared {
	out := newDeclared()

	for _, kv := range userAgentDefaults[n.Data] {
		out.set(kv[0], kv[1], weight{tier: tierUserAgent})
	}

	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "bgcolor":
			out.set("background-color", a.Val, weight{tier: tierAttribute})
		case "color":
			if n.Data == "font" {
				out.set("color", a.Val, weight{tier: tierAttribute})
			}
		}
	}

	for _, r := range d.rules {
		if !r.sel.Match(n) {
			continue
		}
		for _, decl := range r.decls {
			tier := tierSheet
			if decl.Important {
				tier = tierSheetImportant
			}
			out.set(decl.Property, decl.Value, weight{tier: tier, spec: r.spec, order: r.order})
		}
	}

	if inline, ok := attr(n, "style"); ok && strings.TrimSpace(inline) != "" {
		// douceur loses the value of a last declaration without ";"
		if !strings.HasSuffix(strings.TrimSpace(inline), ";") {
			inline += ";"
		}
		decls, err := parser.ParseDeclarations(inline)
		if err != nil {
			log.Printf("styledom: skipping inline style on <%s>: %v", n.Data, err)
		}
		for _, decl := range decls {
			tier := tierInline
			if decl.Important {
				tier = tierInlineImportant
			}
			out.set(decl.Property, decl.Value, weight{tier: tier})
		}
	}
	return out
}

// maxVarDepth bounds var() substitution chains.
const maxVarDepth = 16

// resolveVars substitutes var(--name, fallback) references. ok is false
// when a reference has neither a value nor a fallback.
func resolveVars(v string, vars map[string]string, depth int) (string, bool) {
	if depth > maxVarDepth {
		return "", false
	}
	for {
		start := strings.Index(strings.ToLower(v), "var(")
		if start < 0 {
			return v, true
		}
		end := matchParen(v, start+3)
		if end < 0 {
			return "", false
		}

		name, fallback, hasFallback := strings.Cut(v[start+4:end], ",")
		name = strings.TrimSpace(name)

		sub, found := vars[name]
		if !found || strings.TrimSpace(sub) == "" {
			if !hasFallback {
				return "", false
			}
			sub = fallback
		}
		sub, ok := resolveVars(strings.TrimSpace(sub), vars, depth+1)
		if !ok {
			return "", false
		}
		v = v[:start] + sub + v[end+1:]
	}
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
