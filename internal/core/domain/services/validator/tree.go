// Package validator checks transport order documents, generated or foreign,
// in independent stages. Findings are accumulated into validation results;
// only configuration failures are reported as errors.
//
// Element lookup accepts both namespaced and bare documents: every lookup
// tries the transport order namespace first and falls back to elements
// without a namespace.
package validator

import (
	"errors"
	"strings"

	"transportorder/internal/core/domain/model/validation"

	"github.com/beevik/etree"
)

// Namespace is the namespace of transport order documents.
const Namespace = "http://xch.transporeon.com/soap/"

var lookupOrder = []string{Namespace, ""}

type tree struct {
	root  *etree.Element
	order *etree.Element
}

func parse(xml string) (*tree, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return &tree{root: root, order: find(root, "transport_order")}, nil
}

// load parses xml for a single stage. It records a finding and returns
// false when the stage cannot run.
func load(xml string, result *validation.Result) (*tree, bool) {
	t, err := parse(xml)
	if err != nil {
		result.AddError("XML parsing error: %v", err)
		return nil, false
	}
	if t.order == nil {
		result.AddError("No transport_order element found")
		return nil, false
	}
	return t, true
}

// find returns the first descendant named name in document order.
func find(e *etree.Element, name string) *etree.Element {
	for _, space := range lookupOrder {
		if found := findIn(e, name, space); found != nil {
			return found
		}
	}
	return nil
}

func findIn(e *etree.Element, name, space string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == name && c.NamespaceURI() == space {
			return c
		}
		if found := findIn(c, name, space); found != nil {
			return found
		}
	}
	return nil
}

func child(parent *etree.Element, name string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, space := range lookupOrder {
		for _, c := range parent.ChildElements() {
			if c.Tag == name && c.NamespaceURI() == space {
				return c
			}
		}
	}
	return nil
}

// children returns the namespaced children named name or, if there are
// none, the bare ones.
func children(parent *etree.Element, name string) []*etree.Element {
	if parent == nil {
		return nil
	}
	for _, space := range lookupOrder {
		var out []*etree.Element
		for _, c := range parent.ChildElements() {
			if c.Tag == name && c.NamespaceURI() == space {
				out = append(out, c)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func text(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}

func childText(parent *etree.Element, name string) string {
	return text(child(parent, name))
}

func orderDetails(order *etree.Element) *etree.Element {
	return child(child(order, "orders"), "order_details")
}

// parameterSections returns the transport level and the order level
// parameters elements that exist.
func parameterSections(order *etree.Element) []*etree.Element {
	var sections []*etree.Element
	for _, owner := range []*etree.Element{order, orderDetails(order)} {
		if section := child(owner, "parameters"); section != nil {
			sections = append(sections, section)
		}
	}
	return sections
}

// parameters returns the parameters of both levels, transport level first.
func parameters(order *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, section := range parameterSections(order) {
		out = append(out, children(section, "parameter")...)
	}
	return out
}

func qualifier(parameter *etree.Element) string {
	return parameter.SelectAttrValue("qualifier", "")
}

func qualifiers(params []*etree.Element) map[string]bool {
	out := make(map[string]bool, len(params))
	for _, p := range params {
		out[qualifier(p)] = true
	}
	return out
}

func stops(order *etree.Element) []*etree.Element {
	return children(child(order, "stops"), "stop")
}
