package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ContentModel is a category of HTML content.
//
//go:generate go tool stringer -type=ContentModel -linecomment
type ContentModel int

const (
	Metadata    ContentModel = iota // metadata
	Flow                            // flow
	Sectioning                      // sectioning
	Heading                         // heading
	Phrasing                        // phrasing
	Embedded                        // embedded
	Interactive                     // interactive
)

// parseContentModel is the inverse of ContentModel.String.
func parseContentModel(s string) (ContentModel, error) {
	for m := Metadata; m <= Interactive; m++ {
		if m.String() == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown content model %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *ContentModel) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := parseContentModel(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	*m = parsed

	return nil
}

// ChildKind selects what a ChildRule accepts.
type ChildKind int

const (
	// ChildTransparent accepts whatever the parent's parent accepts.
	ChildTransparent ChildKind = iota
	// ChildText accepts text only.
	ChildText
	// ChildModel accepts elements of a content category.
	ChildModel
	// ChildTag accepts one specific tag.
	ChildTag
)

// ChildRule is one entry of a tag's children column. In YAML it is written
// as "transparent", "text", "model:<category>" or "tag:<name>".
type ChildRule struct {
	Kind  ChildKind
	Model ContentModel
	Tag   string
}

// String returns the YAML spelling of the rule.
func (r ChildRule) String() string {
	switch r.Kind {
	case ChildTransparent:
		return "transparent"
	case ChildText:
		return "text"
	case ChildModel:
		return "model:" + r.Model.String()
	case ChildTag:
		return "tag:" + r.Tag
	default:
		return fmt.Sprintf("ChildRule(%d)", r.Kind)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *ChildRule) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	kind, arg, _ := strings.Cut(s, ":")

	switch kind {
	case "transparent":
		*r = ChildRule{Kind: ChildTransparent}
	case "text":
		*r = ChildRule{Kind: ChildText}
	case "model":
		m, err := parseContentModel(arg)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}

		*r = ChildRule{Kind: ChildModel, Model: m}
	case "tag":
		if arg == "" {
			return fmt.Errorf("line %d: child rule %q has no tag", value.Line, s)
		}

		*r = ChildRule{Kind: ChildTag, Tag: arg}
	default:
		return fmt.Errorf("line %d: unknown child rule %q", value.Line, s)
	}

	return nil
}

// TagInfo describes one HTML element.
type TagInfo struct {
	// Name of the tag, e.g. "a", "br" or "img".
	Name string `yaml:"name"`
	// Type is the handle type in the dom runtime package, e.g.
	// "HTMLAnchorElement". It follows the interface name of the HTML standard.
	Type string `yaml:"type"`
	// Categories are the content categories the element belongs to.
	Categories []ContentModel `yaml:"categories,omitempty"`
	// Children lists what the element accepts. Empty means a void element.
	Children []ChildRule `yaml:"children,omitempty"`
	// Attributes are the element specific attributes. Global attributes are
	// accepted on every element and are not listed.
	Attributes []string `yaml:"attributes,omitempty"`
}

// In reports whether the tag belongs to the content category m.
func (t *TagInfo) In(m ContentModel) bool {
	for _, c := range t.Categories {
		if c == m {
			return true
		}
	}

	return false
}

// Void reports whether the element accepts no children.
func (t *TagInfo) Void() bool {
	return len(t.Children) == 0
}
