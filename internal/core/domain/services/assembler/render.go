package assembler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var (
	// ErrMalformedTemplate is returned when a template cannot be parsed.
	ErrMalformedTemplate = errors.New("malformed template")
	// ErrMalformedOutput is returned when a rendered document does not
	// parse back. It points at a template or fragment defect, not at input.
	ErrMalformedOutput = errors.New("malformed output")
)

const indentSpaces = 4

var placeholderPattern = regexp.MustCompile(`\{([^}]*)\}`)

var (
	standaloneLinePattern = regexp.MustCompile(`(?m)^\s*\{[^}]*\}\s*$`)
	placeholderElement    = regexp.MustCompile(`<([^>/]+)>\s*\{[^}]*\}\s*</([^>]+)>`)
	placeholderSelfClose  = regexp.MustCompile(`<[^>]*\{[^}]*\}[^>]*/>\s*`)
)

// StripPlaceholders removes unresolved placeholder tokens from text: lines
// holding only a token, elements whose content is only a token, self-closing
// elements with a token in an attribute, and finally any remaining token.
// Text without tokens is returned unchanged.
func StripPlaceholders(text string) string {
	if !placeholderPattern.MatchString(text) {
		return text
	}

	text = standaloneLinePattern.ReplaceAllString(text, "")
	text = placeholderElement.ReplaceAllStringFunc(text, func(match string) string {
		names := placeholderElement.FindStringSubmatch(match)
		if strings.TrimSpace(names[1]) != strings.TrimSpace(names[2]) {
			return match
		}
		return ""
	})
	text = placeholderSelfClose.ReplaceAllString(text, "")
	return placeholderPattern.ReplaceAllString(text, "")
}

// Render fills template with the staged values and returns the indented
// document text.
//
// An element whose only content is unresolved placeholders is dropped, as
// is an element with an unresolved placeholder in an attribute. Staged
// values are inserted verbatim and never scanned for placeholders.
func Render(template string, staging *Staging) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(template); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedTemplate, err)
	}
	if doc.Root() == nil {
		return "", fmt.Errorf("%w: no root element", ErrMalformedTemplate)
	}
	if staging == nil {
		staging = NewStaging()
	}

	for _, el := range templateElements(doc.Root()) {
		if el.Parent() == nil {
			continue
		}
		if !resolveAttributes(el, staging) || isUnresolvedLeaf(el, staging) {
			el.Parent().RemoveChild(el)
			continue
		}
		resolveText(el, staging)
	}

	return serialize(doc)
}

func serialize(doc *etree.Document) (string, error) {
	if doc.Root() == nil {
		return "", fmt.Errorf("%w: root element was removed", ErrMalformedOutput)
	}

	doc.Indent(indentSpaces)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}

	check := etree.NewDocument()
	if err := check.ReadFromString(out); err != nil || check.Root() == nil {
		return "", fmt.Errorf("%w: rendered document does not parse: %v", ErrMalformedOutput, err)
	}
	return out, nil
}

// templateElements lists root and its descendants in document order before
// anything is inserted.
func templateElements(root *etree.Element) []*etree.Element {
	list := []*etree.Element{root}
	for i := 0; i < len(list); i++ {
		list = append(list, list[i].ChildElements()...)
	}
	return list
}

// resolveAttributes substitutes staged text into attribute values. It
// reports false when an attribute refers to a placeholder nothing resolves.
func resolveAttributes(el *etree.Element, staging *Staging) bool {
	for i := range el.Attr {
		value := el.Attr[i].Value
		if !placeholderPattern.MatchString(value) {
			continue
		}
		resolved := true
		el.Attr[i].Value = placeholderPattern.ReplaceAllStringFunc(value, func(token string) string {
			v, ok := staging.Value(tokenName(token))
			if !ok {
				resolved = false
			}
			return v
		})
		if !resolved {
			return false
		}
	}
	return true
}

// isUnresolvedLeaf reports whether el has no child elements and its text is
// nothing but placeholders none of which is staged.
func isUnresolvedLeaf(el *etree.Element, staging *Staging) bool {
	if len(el.ChildElements()) > 0 {
		return false
	}

	text := el.Text()
	tokens := placeholderPattern.FindAllString(text, -1)
	if len(tokens) == 0 || strings.TrimSpace(placeholderPattern.ReplaceAllString(text, "")) != "" {
		return false
	}
	for _, token := range tokens {
		if staging.Has(tokenName(token)) {
			return false
		}
	}
	return true
}

// resolveText replaces placeholders in the character data directly under
// el. Children are visited back to front so inserting fragments does not
// shift the positions still to be visited.
func resolveText(el *etree.Element, staging *Staging) {
	for i := len(el.Child) - 1; i >= 0; i-- {
		data, ok := el.Child[i].(*etree.CharData)
		if !ok || !placeholderPattern.MatchString(data.Data) {
			continue
		}

		tokens := expandText(data.Data, staging)
		if len(el.ChildElements()) > 0 || hasElement(tokens) {
			tokens = dropBlankText(tokens)
		}
		el.RemoveChildAt(i)
		for j := len(tokens) - 1; j >= 0; j-- {
			el.InsertChildAt(i, tokens[j])
		}
	}
}

// expandText splits text into the tokens that replace it. Runs of template
// text, including unresolved placeholders, go through StripPlaceholders;
// staged values are appended as they are.
func expandText(text string, staging *Staging) []etree.Token {
	var (
		out      []etree.Token
		pending  strings.Builder
		template strings.Builder
	)

	flushTemplate := func() {
		pending.WriteString(StripPlaceholders(template.String()))
		template.Reset()
	}
	flushText := func() {
		flushTemplate()
		if pending.Len() > 0 {
			out = append(out, etree.NewText(pending.String()))
			pending.Reset()
		}
	}

	last := 0
	for _, loc := range placeholderPattern.FindAllStringIndex(text, -1) {
		template.WriteString(text[last:loc[0]])
		token := text[loc[0]:loc[1]]
		last = loc[1]

		name := tokenName(token)
		if value, ok := staging.Value(name); ok {
			flushTemplate()
			pending.WriteString(value)
			continue
		}
		if fragment, ok := staging.Fragment(name); ok {
			flushText()
			for _, f := range fragment {
				out = append(out, f.Copy())
			}
			continue
		}
		template.WriteString(token)
	}
	template.WriteString(text[last:])
	flushText()

	return out
}

func hasElement(tokens []etree.Token) bool {
	for _, t := range tokens {
		if _, ok := t.(*etree.Element); ok {
			return true
		}
	}
	return false
}

// dropBlankText removes whitespace runs between elements; Indent lays them
// out again.
func dropBlankText(tokens []etree.Token) []etree.Token {
	kept := tokens[:0]
	for _, t := range tokens {
		if data, ok := t.(*etree.CharData); ok && strings.TrimSpace(data.Data) == "" {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

func tokenName(token string) string {
	return strings.TrimSpace(token[1 : len(token)-1])
}
