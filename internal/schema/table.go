package schema

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"domsl/internal/match"
)

//go:embed html.yaml
var htmlYAML []byte

// Table is a sorted set of tag descriptors plus the attributes accepted on
// every element. It is immutable after construction.
type Table struct {
	tags     []TagInfo
	names    []string
	globals  []string
	prefixes []string
}

type tableFile struct {
	GlobalAttributes []string  `yaml:"global_attributes"`
	GlobalPrefixes   []string  `yaml:"global_prefixes"`
	Tags             []TagInfo `yaml:"tags"`
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded HTML table. The first call parses it and,
// unless built with the domsl_release tag, verifies the sort order.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(htmlYAML)
		if err != nil {
			panic(fmt.Sprintf("schema: embedded html.yaml: %v", err))
		}

		if checkInvariants {
			if err := t.CheckSorted(); err != nil {
				panic(fmt.Sprintf("schema: embedded html.yaml: %v", err))
			}
		}

		defaultTable = t
	})

	return defaultTable
}

// Parse parses a table in the html.yaml format. It does not verify the sort
// order; see CheckSorted.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	for i, tag := range f.Tags {
		if tag.Name == "" {
			return nil, fmt.Errorf("tag #%d has no name", i)
		}

		if tag.Type == "" {
			return nil, fmt.Errorf("tag %q has no type", tag.Name)
		}
	}

	t := &Table{
		tags:     f.Tags,
		globals:  slices.Clone(f.GlobalAttributes),
		prefixes: f.GlobalPrefixes,
	}
	slices.Sort(t.globals)

	t.names = make([]string, len(t.tags))
	for i := range t.tags {
		t.names[i] = t.tags[i].Name
	}

	return t, nil
}

// WithGlobalAttributes returns a copy of t that also accepts the given
// attribute names on every element.
func (t *Table) WithGlobalAttributes(extra ...string) *Table {
	if len(extra) == 0 {
		return t
	}

	c := *t
	c.globals = append(slices.Clone(t.globals), extra...)
	slices.Sort(c.globals)
	c.globals = slices.Compact(c.globals)

	return &c
}

// CheckSorted verifies that tag names are strictly increasing, which the
// binary search in Lookup relies on.
func (t *Table) CheckSorted() error {
	for i := 1; i < len(t.tags); i++ {
		prev, cur := t.tags[i-1].Name, t.tags[i].Name
		if prev >= cur {
			return fmt.Errorf("tags are not sorted: %q is listed before %q", prev, cur)
		}
	}

	return nil
}

// Len returns the number of known tags.
func (t *Table) Len() int {
	return len(t.tags)
}

// Names returns the known tag names in table order.
func (t *Table) Names() []string {
	return slices.Clone(t.names)
}

// Lookup finds the descriptor of a tag by exact, case sensitive name.
func (t *Table) Lookup(name string) (*TagInfo, bool) {
	i := sort.SearchStrings(t.names, name)
	if i < len(t.names) && t.names[i] == name {
		return &t.tags[i], true
	}

	return nil, false
}

// IsGlobalAttribute reports whether attr is accepted on every element.
func (t *Table) IsGlobalAttribute(attr string) bool {
	if _, ok := slices.BinarySearch(t.globals, attr); ok {
		return true
	}

	for _, p := range t.prefixes {
		if strings.HasPrefix(attr, p) && len(attr) > len(p) {
			return true
		}
	}

	return false
}

// CheckAttribute reports whether attr is valid on the tag.
func (t *Table) CheckAttribute(info *TagInfo, attr string) bool {
	return slices.Contains(info.Attributes, attr) || t.IsGlobalAttribute(attr)
}

// Suggest returns the known tag closest to a misspelled name, or "".
func (t *Table) Suggest(name string) string {
	return match.Suggest(name, t.names)
}

// SuggestAttribute returns the attribute of info (or global attribute)
// closest to a misspelled name, or "".
func (t *Table) SuggestAttribute(info *TagInfo, name string) string {
	if s := match.Suggest(name, info.Attributes); s != "" {
		return s
	}

	return match.Suggest(name, t.globals)
}

// AllowsChild reports whether the rules of parent accept child. child is a
// tag descriptor, or nil for text. Transparent content is accepted without
// looking at the grandparent.
func (t *Table) AllowsChild(parent, child *TagInfo) bool {
	for _, rule := range parent.Children {
		switch rule.Kind {
		case ChildTransparent:
			return true
		case ChildText:
			if child == nil {
				return true
			}
		case ChildModel:
			// Text is phrasing content, and phrasing content is flow content.
			if child == nil && (rule.Model == Phrasing || rule.Model == Flow) {
				return true
			}

			if child != nil && child.In(rule.Model) {
				return true
			}
		case ChildTag:
			if child != nil && child.Name == rule.Tag {
				return true
			}
		}
	}

	return false
}
