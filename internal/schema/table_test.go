package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func TestDefault_Sorted(t *testing.T) {
	table := Default()
	require.NoError(t, table.CheckSorted())
	assert.Equal(t, 112, table.Len())
	assert.Same(t, table, Default(), "the table is built once")
}

func TestLookup(t *testing.T) {
	table := Default()

	for _, name := range table.Names() {
		info, ok := table.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, info.Name)
	}

	div, ok := table.Lookup("div")
	require.True(t, ok)
	assert.Equal(t, "HTMLDivElement", div.Type)
	assert.True(t, div.In(Flow))

	a, ok := table.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "HTMLAnchorElement", a.Type)
	assert.Equal(t, []ChildRule{{Kind: ChildTransparent}}, a.Children)

	for _, name := range []string{"foo", "Div", "", "zzz", "aa", "svg"} {
		_, ok := table.Lookup(name)
		assert.False(t, ok, name)
	}
}

// The names the table knows must be the ones the HTML tokenizer knows.
func TestLookup_MatchesHTMLAtoms(t *testing.T) {
	table := Default()

	for _, name := range []string{"a", "body", "br", "button", "div", "form", "h1", "img", "input",
		"li", "p", "select", "span", "table", "td", "template", "textarea", "tr", "ul", "video"} {
		_, ok := table.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, atom.Lookup([]byte(name)).String())
	}
}

func TestCheckAttribute(t *testing.T) {
	table := Default()
	a, _ := table.Lookup("a")
	div, _ := table.Lookup("div")

	assert.True(t, table.CheckAttribute(a, "href"))
	assert.False(t, table.CheckAttribute(div, "href"))
	assert.True(t, table.CheckAttribute(div, "class"))
	assert.True(t, table.CheckAttribute(div, "id"))
	assert.True(t, table.CheckAttribute(div, "role"))
	assert.True(t, table.CheckAttribute(div, "data-id"))
	assert.True(t, table.CheckAttribute(div, "aria-label"))
	assert.True(t, table.CheckAttribute(div, "onclick"))
	assert.False(t, table.CheckAttribute(div, "data-"), "a bare prefix is not an attribute")
	assert.False(t, table.CheckAttribute(div, "hx-get"))

	extended := table.WithGlobalAttributes("hx-get", "class")
	assert.True(t, extended.CheckAttribute(div, "hx-get"))
	assert.False(t, table.CheckAttribute(div, "hx-get"), "the original table is unchanged")
}

func TestSuggest(t *testing.T) {
	table := Default()
	a, _ := table.Lookup("a")

	assert.Equal(t, "div", table.Suggest("dvi"))
	assert.Equal(t, "href", table.SuggestAttribute(a, "herf"))
	assert.Equal(t, "class", table.SuggestAttribute(a, "clas"))
	assert.Equal(t, "", table.SuggestAttribute(a, "qqqqqqqq"))
}

func TestAllowsChild(t *testing.T) {
	table := Default()
	lookup := func(name string) *TagInfo {
		info, ok := table.Lookup(name)
		require.True(t, ok, name)

		return info
	}

	assert.True(t, table.AllowsChild(lookup("ul"), lookup("li")))
	assert.False(t, table.AllowsChild(lookup("ul"), lookup("div")))
	assert.False(t, table.AllowsChild(lookup("ul"), nil))
	assert.True(t, table.AllowsChild(lookup("p"), lookup("span")))
	assert.False(t, table.AllowsChild(lookup("p"), lookup("div")))
	assert.True(t, table.AllowsChild(lookup("p"), nil))
	assert.True(t, table.AllowsChild(lookup("a"), lookup("div")), "transparent")
	assert.False(t, table.AllowsChild(lookup("br"), nil), "void")
	assert.True(t, lookup("br").Void())
}

func TestParse_Unsorted(t *testing.T) {
	table, err := Parse([]byte(`
tags:
  - name: div
    type: HTMLDivElement
  - name: a
    type: HTMLAnchorElement
`))
	require.NoError(t, err)

	err = table.CheckSorted()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"div" is listed before "a"`)
}

func TestParse_Duplicate(t *testing.T) {
	table, err := Parse([]byte(`
tags:
  - {name: a, type: HTMLAnchorElement}
  - {name: a, type: HTMLAnchorElement}
`))
	require.NoError(t, err)
	require.Error(t, table.CheckSorted())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing type", "tags:\n  - name: a\n", `tag "a" has no type`},
		{"missing name", "tags:\n  - type: X\n", "tag #0 has no name"},
		{"bad category", "tags:\n  - {name: a, type: X, categories: [inline]}\n", `unknown content model "inline"`},
		{"bad child", "tags:\n  - {name: a, type: X, children: [many]}\n", `unknown child rule "many"`},
		{"empty child tag", "tags:\n  - {name: a, type: X, children: [\"tag:\"]}\n", "has no tag"},
		{"not yaml", "tags: [", "failed to parse schema YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestChildRule_String(t *testing.T) {
	assert.Equal(t, "model:phrasing", ChildRule{Kind: ChildModel, Model: Phrasing}.String())
	assert.Equal(t, "tag:li", ChildRule{Kind: ChildTag, Tag: "li"}.String())
	assert.Equal(t, "ContentModel(42)", ContentModel(42).String())
}
