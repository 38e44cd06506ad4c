package check

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domsl/internal/diagnostic"
	"domsl/internal/markup"
	"domsl/internal/schema"
)

func validate(t *testing.T, src string, opts Options) (*Result, error) {
	t.Helper()

	fset := token.NewFileSet()
	file := fset.AddFile("v.gox", -1, len(src))

	toks, err := markup.Tokenize(file, []byte(src))
	require.NoError(t, err)

	root, err := markup.Parse(toks, []byte(src), file.Pos(len(src)))
	require.NoError(t, err)

	return Validate(fset, root, opts)
}

func TestValidate_RootCast(t *testing.T) {
	tests := []struct {
		src  string
		cast string
	}{
		{`<div></div>`, "HTMLDivElement"},
		{`<a href="/">"x"</a>`, "HTMLAnchorElement"},
		{`<section></section>`, "HTMLElement"},
		{`<Card></Card>`, ""},
		{`<><div/></>`, ""},
		{`{node}`, ""},
		{`"text"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			res, err := validate(t, tt.src, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.cast, res.Cast)
		})
	}
}

func TestValidate_UnknownTag(t *testing.T) {
	_, err := validate(t, `<div><dvi></dvi></div>`, Options{})
	require.Error(t, err)

	d, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeUnknownTag, d.Code)
	assert.Equal(t,
		"v.gox:1:7: unknown HTML tag '<dvi>' (maybe you meant to capitalize it to call a component?) (did you mean div?)",
		d.Error())
}

func TestValidate_ComponentsAreNotLookedUp(t *testing.T) {
	_, err := validate(t, `<Foo bar={1}><ui.Widget/></Foo>`, Options{})
	require.NoError(t, err)
}

func TestValidate_InvalidAttribute(t *testing.T) {
	_, err := validate(t, `<div><a herf="/x"></a></div>`, Options{})
	require.Error(t, err)

	d, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeInvalidAttribute, d.Code)
	assert.Equal(t, "attribute 'herf' is not valid on HTML tag '<a>'", d.Message)
	assert.Equal(t, []string{"href"}, d.Suggestions)
	assert.Equal(t, 9, d.Pos.Column)
}

func TestValidate_AttributesBeforeChildren(t *testing.T) {
	// The bad attribute of the outer element is reported, not the unknown child.
	_, err := validate(t, `<div bogus="1"><nope/></div>`, Options{})
	d, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeInvalidAttribute, d.Code)
}

func TestValidate_GlobalAttributes(t *testing.T) {
	_, err := validate(t, `<span id="a" class="b" data-x="c" aria-hidden="true" onclick={f} hidden></span>`, Options{})
	require.NoError(t, err)

	_, err = validate(t, `<span hx-get="/x"></span>`, Options{})
	require.Error(t, err)

	_, err = validate(t, `<span hx-get="/x"></span>`, Options{Schema: schema.Default().WithGlobalAttributes("hx-get")})
	require.NoError(t, err)
}

func TestValidate_ComponentAttributes(t *testing.T) {
	_, err := validate(t, `<Card data-id="x"></Card>`, Options{})
	d, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Contains(t, d.Message, "must be Go identifiers")

	_, err = validate(t, `<Card a="1" a="2"/>`, Options{})
	d, ok = diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, "attribute 'a' is set twice on component 'Card'", d.Message)
}

func TestValidate_ChildrenOfComponentsAreChecked(t *testing.T) {
	_, err := validate(t, `<Card><blink/></Card>`, Options{})
	d, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeUnknownTag, d.Code)
}

func TestValidate_ContentModel(t *testing.T) {
	src := `<ul><div></div>"text"<li>"ok"</li></ul>`

	res, err := validate(t, src, Options{ContentModel: Ignore})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	res, err = validate(t, src, Options{ContentModel: Warn})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, "<div> is not allowed inside <ul> (accepts tag:li)", res.Warnings[0].Message)
	assert.Equal(t, "text is not allowed inside <ul> (accepts tag:li)", res.Warnings[1].Message)
	assert.Equal(t, diagnostic.DiagnosticWarning, res.Warnings[0].Severity)

	_, err = validate(t, src, Options{ContentModel: Error})
	d, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeContentModel, d.Code)
}

func TestValidate_VoidElement(t *testing.T) {
	_, err := validate(t, `<br>"x"</br>`, Options{ContentModel: Error})
	d, ok := diagnostic.As(err)
	require.True(t, ok)
	assert.Equal(t, "text is not allowed inside <br> (accepts nothing)", d.Message)
}

func TestValidate_FragmentsAreTransparent(t *testing.T) {
	res, err := validate(t, `<ul><><li/><p/></></ul>`, Options{ContentModel: Warn})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "<p> is not allowed inside <ul>")
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"", "ignore", "warn", "error"} {
		m, err := ParseMode(s)
		require.NoError(t, err)

		if s != "" {
			assert.Equal(t, s, m.String())
		}
	}

	_, err := ParseMode("strict")
	assert.Error(t, err)
}
