package reportparser

import "github.com/beevik/etree"

// findDescendant returns the first element, in document order within the
// subtree rooted at el (el itself included), whose local tag name equals
// bareTag. The namespace prefix is ignored entirely; the comparison is an
// exact match on the local name, so "Off" never matches "TakeOff".
// Returns nil when el is nil or nothing matches.
func findDescendant(el *etree.Element, bareTag string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == bareTag {
		return el
	}
	for _, child := range el.ChildElements() {
		if match := findDescendant(child, bareTag); match != nil {
			return match
		}
	}
	return nil
}

// findDescendants collects every matching element in document order.
func findDescendants(el *etree.Element, bareTag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var matches []*etree.Element
	if el.Tag == bareTag {
		matches = append(matches, el)
	}
	for _, child := range el.ChildElements() {
		matches = append(matches, findDescendants(child, bareTag)...)
	}
	return matches
}
