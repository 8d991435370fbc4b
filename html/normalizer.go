// Package html provides the markup normalizer built on golang.org/x/net/html.
// It rewrites Wix export markup into a portable fragment by deleting clutter
// and flattening redundant nesting; it never invents or rearranges content.
package html

import (
	"bytes"
	"strings"

	"github.com/mkrzemien/wixport"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Normalizer implements wixport.Normalizer at compile time.
var _ wixport.Normalizer = (*Normalizer)(nil)

// clutterTags are elements removed outright together with their subtree.
// Wix embeds these inside the post body for chrome and tracking.
var clutterTags = map[string]bool{
	"script":   true,
	"style":    true,
	"button":   true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"form":     true,
	"noscript": true,
}

// wrapperTags are layout containers eligible for single-child collapsing.
var wrapperTags = map[string]bool{
	"div":     true,
	"span":    true,
	"section": true,
}

// keptAttrs lists, per element, the attributes that survive normalization.
// Everything else (auto-generated class hooks, data-* tracking attributes,
// inline styles) is stripped. Image and link attributes are kept verbatim;
// images are never rewritten or re-hosted here.
var keptAttrs = map[string][]string{
	"img": {"src", "alt", "title", "width", "height", "srcset", "loading"},
	"a":   {"href"},
}

// selfClosing are elements that legitimately carry no text content.
var selfClosing = map[string]bool{
	"img": true,
	"br":  true,
	"hr":  true,
}

// Normalizer rewrites raw post markup into clean HTML.
// The zero value is ready to use; Normalize is a pure function.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize parses the raw fragment, applies the cleanup passes to a fixed
// point, and re-serializes. Normalizing already-normalized HTML returns it
// unchanged.
func (n *Normalizer) Normalize(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	root, err := parseFragment(rawHTML)
	if err != nil {
		return "", wixport.Errorf(wixport.EINVALID, "parsing body markup: %v", err)
	}

	removeClutter(root)
	stripAttributes(root)

	// The structural rules can expose new work for each other (removing an
	// empty span can leave a wrapper with a single child), so they run in
	// a changed-flag loop until the tree stops moving. This also makes the
	// whole transformation idempotent by construction.
	for {
		changed := collapseWrappers(root)
		changed = unwrapInline(root) || changed
		changed = removeEmpty(root) || changed
		changed = collapseBreaks(root) || changed
		if !changed {
			break
		}
	}

	return renderChildren(root)
}

// parseFragment parses a body fragment and reparents the resulting nodes
// under a synthetic container so sibling surgery is uniform.
func parseFragment(fragment string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, node := range nodes {
		root.AppendChild(node)
	}
	return root, nil
}

// renderChildren serializes the container's children as a fragment.
func renderChildren(root *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// removeClutter deletes script/style/nav style elements and alt-less SVGs.
func removeClutter(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && (clutterTags[c.Data] || isDecorativeSVG(c)) {
			n.RemoveChild(c)
			continue
		}
		removeClutter(c)
	}
}

// isDecorativeSVG reports whether the node is an SVG without alternative
// text. Wix uses these for icons and share widgets.
func isDecorativeSVG(n *html.Node) bool {
	if n.Data != "svg" {
		return false
	}
	return attrValue(n, "alt") == ""
}

// stripAttributes drops every attribute not on the keep list for its tag.
func stripAttributes(n *html.Node) {
	if n.Type == html.ElementNode {
		keep := keptAttrs[n.Data]
		if len(keep) == 0 {
			n.Attr = nil
		} else {
			var kept []html.Attribute
			for _, name := range keep {
				for _, a := range n.Attr {
					if a.Key == name && a.Namespace == "" {
						kept = append(kept, a)
						break
					}
				}
			}
			n.Attr = kept
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stripAttributes(c)
	}
}

// collapseWrappers replaces attribute-free layout containers that hold
// exactly one element child (and no text of their own) with that child.
// Returns true if any collapse happened; callers loop to a fixed point, so
// arbitrarily deep nesting flattens without recursion on the nesting depth.
func collapseWrappers(n *html.Node) bool {
	changed := false
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if child, ok := soleElementChild(c); ok {
			c.RemoveChild(child)
			n.InsertBefore(child, c)
			n.RemoveChild(c)
			changed = true
			next = child
			continue
		}
		if collapseWrappers(c) {
			changed = true
		}
	}
	return changed
}

// soleElementChild reports whether n is a collapsible wrapper and returns
// its single element child. Whitespace-only text nodes don't count as
// content of the wrapper's own.
func soleElementChild(n *html.Node) (*html.Node, bool) {
	if n.Type != html.ElementNode || !wrapperTags[n.Data] || len(n.Attr) != 0 {
		return nil, false
	}

	var child *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(strings.ReplaceAll(c.Data, "\u00a0", " ")) != "" {
				return nil, false
			}
		case html.ElementNode:
			if child != nil {
				return nil, false
			}
			child = c
		case html.CommentNode:
			// comments don't block collapsing
		default:
			return nil, false
		}
	}
	if child == nil {
		return nil, false
	}
	return child, true
}

// unwrapInline merges the children of attribute-free spans and href-less
// anchors into their parent. These are formatting leftovers once their
// styling hooks are stripped.
func unwrapInline(n *html.Node) bool {
	changed := false
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if isUnwrappableInline(c) && c.FirstChild != nil {
			first := c.FirstChild
			for c.FirstChild != nil {
				grand := c.FirstChild
				c.RemoveChild(grand)
				n.InsertBefore(grand, c)
			}
			n.RemoveChild(c)
			changed = true
			next = first
			continue
		}
		if unwrapInline(c) {
			changed = true
		}
	}
	return changed
}

func isUnwrappableInline(n *html.Node) bool {
	if n.Type != html.ElementNode || len(n.Attr) != 0 {
		return false
	}
	switch n.Data {
	case "span", "a":
		return true
	case "figure":
		// Figures exist to frame images; one without an image is a wrapper.
		return !containsTag(n, "img")
	}
	return false
}

// removeEmpty deletes elements with no text and no meaningful descendants,
// bottom-up so newly emptied parents go in the same sweep.
func removeEmpty(n *html.Node) bool {
	changed := false
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if removeEmpty(c) {
			changed = true
		}
		if isEmptyElement(c) {
			n.RemoveChild(c)
			changed = true
		}
	}
	return changed
}

// isEmptyElement reports whether the element carries no content at all:
// no non-whitespace text and no image/break/rule descendants.
func isEmptyElement(n *html.Node) bool {
	if n.Type != html.ElementNode || selfClosing[n.Data] {
		return false
	}
	if hasText(n) {
		return false
	}
	for tag := range selfClosing {
		if containsTag(n, tag) {
			return false
		}
	}
	return true
}

// collapseBreaks reduces runs of consecutive <br> elements to a single one.
// Whitespace-only text between breaks doesn't split a run.
func collapseBreaks(n *html.Node) bool {
	changed := false
	prevWasBreak := false
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		switch {
		case c.Type == html.ElementNode && c.Data == "br":
			if prevWasBreak {
				n.RemoveChild(c)
				changed = true
				continue
			}
			prevWasBreak = true
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			// whitespace keeps the current run open
		default:
			prevWasBreak = false
			if c.Type == html.ElementNode && collapseBreaks(c) {
				changed = true
			}
		}
	}
	return changed
}

// hasText reports whether any descendant text node contains non-whitespace
// content. Non-breaking spaces count as whitespace.
func hasText(n *html.Node) bool {
	if n.Type == html.TextNode {
		return strings.TrimSpace(strings.ReplaceAll(n.Data, "\u00a0", " ")) != ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasText(c) {
			return true
		}
	}
	return false
}

// containsTag reports whether n or any descendant is the given element.
func containsTag(n *html.Node, tag string) bool {
	if n.Type == html.ElementNode && n.Data == tag {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsTag(c, tag) {
			return true
		}
	}
	return false
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
