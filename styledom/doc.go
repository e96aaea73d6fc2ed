// Package styledom renders just enough of an HTML page to audit text
// contrast: it parses <style> blocks and inline styles, applies them in
// cascade order, and exposes each element as a contrast.TextNode.
//
// Supported: type/class/id/attribute/combinator selectors with specificity,
// !important, custom properties with var(), the background shorthand,
// inherited color/font-size/font-weight, and prefers-color-scheme media
// queries. Layout, positioning and background images are not modeled;
// an element painted only by a gradient or image is transparent, as its
// computed background-color would be in a browser.
package styledom
