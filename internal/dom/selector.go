package dom

import (
	"fmt"
	"strings"
)

// Selector is a restricted element selector that both hosts can evaluate:
// the browser host renders it as CSS, the headless host as XPath.
//
// A selector matches elements with the given tag (any tag when empty) that
// carry Class and whose class attribute starts with ClassPrefix. When
// Within is set, the element must also have an ancestor carrying that class.
type Selector struct {
	Within      string
	Tag         string
	Class       string
	ClassPrefix string
}

// Tag selects elements by tag name.
func Tag(name string) Selector { return Selector{Tag: name} }

// Class selects elements carrying a class.
func Class(name string) Selector { return Selector{Class: name} }

// ClassPrefix selects elements whose class attribute starts with prefix.
func ClassPrefix(prefix string) Selector { return Selector{ClassPrefix: prefix} }

// TagWithin selects tag elements under an ancestor carrying class.
func TagWithin(class, tag string) Selector { return Selector{Within: class, Tag: tag} }

// IsZero reports whether the selector has no constraints.
func (s Selector) IsZero() bool { return s == Selector{} }

// CSS renders the selector for querySelector/querySelectorAll.
func (s Selector) CSS() string {
	step := s.Tag
	if s.Class != "" {
		step += "." + s.Class
	}
	if s.ClassPrefix != "" {
		step += fmt.Sprintf(`[class^="%s"]`, s.ClassPrefix)
	}
	if step == "" {
		step = "*"
	}
	if s.Within != "" {
		return "." + s.Within + " " + step
	}
	return step
}

// XPath renders the selector as a relative XPath 1.0 expression matching
// descendants of the context node.
func (s Selector) XPath() string {
	var preds []string
	if s.Tag != "" {
		preds = append(preds, fmt.Sprintf("local-name()='%s'", s.Tag))
	}
	if s.Class != "" {
		preds = append(preds, hasClassXPath(s.Class))
	}
	if s.ClassPrefix != "" {
		preds = append(preds, fmt.Sprintf("starts-with(@class,'%s')", s.ClassPrefix))
	}
	step := "*"
	if len(preds) > 0 {
		step += "[" + strings.Join(preds, " and ") + "]"
	}
	if s.Within != "" {
		return ".//*[" + hasClassXPath(s.Within) + "]//" + step
	}
	return ".//" + step
}

func (s Selector) String() string { return s.CSS() }

func hasClassXPath(class string) string {
	return fmt.Sprintf("contains(concat(' ',normalize-space(@class),' '),' %s ')", class)
}
