package dom

import "testing"

func TestSelectorCSS(t *testing.T) {
	tests := []struct {
		sel  Selector
		want string
	}{
		{TagWithin("mermaid", "svg"), ".mermaid svg"},
		{Class("md-content"), ".md-content"},
		{ClassPrefix("svg-pan-zoom-control"), `[class^="svg-pan-zoom-control"]`},
		{Tag("g"), "g"},
		{Selector{}, "*"},
		{Selector{Tag: "button", Class: "diagram-fullscreen-btn"}, "button.diagram-fullscreen-btn"},
	}
	for _, tt := range tests {
		if got := tt.sel.CSS(); got != tt.want {
			t.Errorf("CSS(%+v) = %q, want %q", tt.sel, got, tt.want)
		}
	}
}

func TestSelectorXPath(t *testing.T) {
	tests := []struct {
		sel  Selector
		want string
	}{
		{Tag("g"), ".//*[local-name()='g']"},
		{Selector{}, ".//*"},
		{ClassPrefix("svg-pan-zoom"), ".//*[starts-with(@class,'svg-pan-zoom')]"},
		{
			TagWithin("mermaid", "svg"),
			".//*[contains(concat(' ',normalize-space(@class),' '),' mermaid ')]//*[local-name()='svg']",
		},
	}
	for _, tt := range tests {
		if got := tt.sel.XPath(); got != tt.want {
			t.Errorf("XPath(%+v) = %q, want %q", tt.sel, got, tt.want)
		}
	}
}

func TestEventString(t *testing.T) {
	if Resize.String() != "resize" {
		t.Errorf("Resize.String() = %q", Resize.String())
	}
	if Event(99).String() != "unknown" {
		t.Errorf("Event(99).String() = %q", Event(99).String())
	}
}

func TestLayoutVisible(t *testing.T) {
	tests := []struct {
		l    Layout
		want bool
	}{
		{Layout{ClientWidth: 10, ClientHeight: 10, Rendered: true}, true},
		{Layout{ClientWidth: 0, ClientHeight: 10, Rendered: true}, false},
		{Layout{ClientWidth: 10, ClientHeight: 0, Rendered: true}, false},
		{Layout{ClientWidth: 10, ClientHeight: 10, Rendered: false}, false},
	}
	for _, tt := range tests {
		if got := tt.l.Visible(); got != tt.want {
			t.Errorf("%+v.Visible() = %v, want %v", tt.l, got, tt.want)
		}
	}
}
