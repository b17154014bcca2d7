package site

import (
	"fmt"
	"html"
	"path"
	"sort"
	"strings"
)

// NavTree is a node in the sidebar navigation built from page paths.
type NavTree struct {
	Name     string
	Title    string // Page H1, or a formatted directory name.
	Path     string // Slash-separated path of the page or directory.
	IsDir    bool
	Children []*NavTree
}

// BuildTree constructs a NavTree from relative markdown paths. titles maps
// a path to its display title and may be nil.
func BuildTree(paths []string, titles map[string]string) *NavTree {
	root := &NavTree{Name: "docs", IsDir: true}

	for _, p := range paths {
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			child := current.child(part)
			if child == nil {
				child = &NavTree{Name: part, IsDir: !isLast}
				if isLast {
					child.Path = p
					child.Title = titles[p]
				} else {
					child.Path = strings.Join(parts[:i+1], "/")
					child.Title = formatDirName(part)
				}
				current.Children = append(current.Children, child)
			}
			current = child
		}
	}

	root.sort()
	return root
}

func (t *NavTree) child(name string) *NavTree {
	for _, c := range t.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// sort orders children directories first, then by name, recursively.
func (t *NavTree) sort() {
	sort.Slice(t.Children, func(i, j int) bool {
		if t.Children[i].IsDir != t.Children[j].IsDir {
			return t.Children[i].IsDir
		}
		return t.Children[i].Name < t.Children[j].Name
	})
	for _, c := range t.Children {
		if c.IsDir {
			c.sort()
		}
	}
}

// ToHTML renders the tree as nested lists. activePath is the page being
// rendered; basePath leads from that page back to the site root.
func (t *NavTree) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	homeActive := ""
	if activePath == "index.md" {
		homeActive = ` class="active"`
	}
	fmt.Fprintf(&b, `<ul><li class="file"><a href="%sindex.html"%s>Home</a></li></ul>`+"\n", basePath, homeActive)
	t.render(&b, activePath, basePath)
	return b.String()
}

func (t *NavTree) render(b *strings.Builder, activePath, basePath string) {
	if len(t.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, c := range t.Children {
		if c.IsDir {
			fmt.Fprintf(b, `<li class="dir"><span>%s</span>`+"\n", html.EscapeString(c.label()))
			c.render(b, activePath, basePath)
			b.WriteString("</li>\n")
			continue
		}
		if c.Path == "index.md" {
			continue
		}
		active := ""
		if c.Path == activePath {
			active = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s%s"%s>%s</a></li>`+"\n",
			basePath, pagePath(c.Path), active, html.EscapeString(c.label()))
	}
	b.WriteString("</ul>\n")
}

func (t *NavTree) label() string {
	if t.Title != "" {
		return t.Title
	}
	return strings.TrimSuffix(t.Name, path.Ext(t.Name))
}

// pagePath maps a markdown path to the HTML page built from it.
func pagePath(p string) string {
	switch ext := path.Ext(p); ext {
	case ".md", ".markdown":
		return strings.TrimSuffix(p, ext) + ".html"
	}
	return p
}

// basePathFor returns the relative prefix leading from page back to the
// site root.
func basePathFor(page string) string {
	return strings.Repeat("../", strings.Count(page, "/"))
}

// formatDirName title-cases a directory slug.
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
