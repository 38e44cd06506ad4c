package dispatch

import (
	"go/token"
	"go/types"
	"slices"
)

// candidate is one entry of the ranked rule list.
type candidate struct {
	rule     Rule
	priority int
	check    func(d *Dispatcher, t types.Type) (Decision, bool)
}

// candidates is the rule list. Evaluation follows priority, not the order
// of declaration.
var candidates = []candidate{
	{rule: RuleNode, priority: 1, check: (*Dispatcher).node},
	{rule: RuleString, priority: 2, check: (*Dispatcher).str},
	{rule: RuleText, priority: 3, check: (*Dispatcher).text},
	{rule: RuleIterNode, priority: 4, check: iterOf((*Dispatcher).node, RuleIterNode)},
	{rule: RuleIterString, priority: 5, check: iterOf((*Dispatcher).str, RuleIterString)},
	{rule: RuleIterText, priority: 6, check: iterOf((*Dispatcher).text, RuleIterText)},
}

// Dispatcher resolves embedded values against the Node interface of the
// runtime package. It is safe for concurrent use.
type Dispatcher struct {
	nodeIface *types.Interface
	errorType *types.Interface
	stringer  *types.Interface
	rules     []candidate
	qualifier types.Qualifier
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithQualifier sets how package names are printed in error messages.
func WithQualifier(q types.Qualifier) Option {
	return func(d *Dispatcher) {
		d.qualifier = q
	}
}

// New creates a Dispatcher for the given dom.Node interface.
func New(node *types.Interface, opts ...Option) *Dispatcher {
	return newWithRules(node, candidates, opts...)
}

func newWithRules(node *types.Interface, rules []candidate, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		nodeIface: node,
		errorType: types.Universe.Lookup("error").Type().Underlying().(*types.Interface),
		stringer:  stringerInterface(),
		rules:     slices.Clone(rules),
	}

	slices.SortStableFunc(d.rules, func(a, b candidate) int {
		return a.priority - b.priority
	})

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// stringerInterface builds interface{ String() string } without importing fmt.
func stringerInterface() *types.Interface {
	result := types.NewTuple(types.NewVar(token.NoPos, nil, "", types.Typ[types.String]))
	sig := types.NewSignatureType(nil, nil, nil, nil, result, false)
	method := types.NewFunc(token.NoPos, nil, "String", sig)

	return types.NewInterfaceType([]*types.Func{method}, nil).Complete()
}

// Resolve picks the rule for an embedded child value of type t.
func (d *Dispatcher) Resolve(t types.Type) (Decision, error) {
	return d.resolve(t, "embedded value", nil)
}

// ResolveText picks the string conversion for an attribute value of type t.
// Only the String and Text rules apply.
func (d *Dispatcher) ResolveText(t types.Type) (Text, error) {
	dec, err := d.resolve(t, "attribute value", func(r Rule) bool {
		return r == RuleString || r == RuleText
	})
	if err != nil {
		if e, ok := err.(*NoRuleError); ok && e.Reason == "" {
			if _, isNode := d.node(t); isNode {
				e.Reason = "nodes cannot be attribute values"
			} else {
				e.Reason = "it is not a string, []byte, error, fmt.Stringer, bool or number"
			}
		}

		return TextNone, err
	}

	return dec.Text, nil
}

func (d *Dispatcher) resolve(t types.Type, what string, allow func(Rule) bool) (Decision, error) {
	fail := func(reason string) (Decision, error) {
		return Decision{}, &NoRuleError{Type: t, What: what, Reason: reason, qualifier: d.qualifier}
	}

	if t == nil {
		return Decision{}, &NoRuleError{Type: types.Typ[types.Invalid], What: what, Reason: "its type could not be determined", qualifier: d.qualifier}
	}

	if reason := d.unusable(t); reason != "" {
		return fail(reason)
	}

	for _, c := range d.rules {
		if allow != nil && !allow(c.rule) {
			continue
		}

		if dec, ok := c.check(d, t); ok {
			dec.Type = t
			return dec, nil
		}
	}

	if allow != nil {
		return fail("")
	}

	return fail(d.explain(t))
}

// unusable rejects types no rule should even look at.
func (d *Dispatcher) unusable(t types.Type) string {
	switch t := t.(type) {
	case *types.Tuple:
		return "an embedded expression must have a single value"
	case *types.Basic:
		switch t.Kind() {
		case types.Invalid:
			return "its type could not be determined"
		case types.UntypedNil:
			return "nil has no type to dispatch on"
		}
	}

	return ""
}

// explain describes why no rule matched.
func (d *Dispatcher) explain(t types.Type) string {
	switch u := t.Underlying().(type) {
	case *types.Map:
		return "maps are not supported because their iteration order is not deterministic; collect the values into a slice first"
	case *types.Chan:
		return "channels are not supported; collect the values into a slice first"
	default:
		if elem, _, ok := iterElem(u); ok {
			if _, _, nested := iterElem(elem.Underlying()); nested {
				return "nested iterables are not supported; flatten the value first"
			}
		}
	}

	return "it is not a node, a string, []byte, error, fmt.Stringer, bool or number, " +
		"nor a slice, array or iter.Seq of those"
}

func (d *Dispatcher) node(t types.Type) (Decision, bool) {
	if d.nodeIface == nil || !types.AssignableTo(t, d.nodeIface) {
		return Decision{}, false
	}

	return Decision{Rule: RuleNode}, true
}

func (d *Dispatcher) str(t types.Type) (Decision, bool) {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		if u.Info()&types.IsString != 0 {
			return Decision{Rule: RuleString, Text: TextString}, true
		}
	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Byte {
			return Decision{Rule: RuleString, Text: TextString}, true
		}
	}

	return Decision{}, false
}

func (d *Dispatcher) text(t types.Type) (Decision, bool) {
	dec := Decision{Rule: RuleText}

	switch {
	case types.Implements(t, d.errorType):
		dec.Text = TextError
	case types.Implements(t, d.stringer):
		dec.Text = TextStringer
	default:
		b, ok := t.Underlying().(*types.Basic)
		if !ok {
			return Decision{}, false
		}

		dec.Text = basicText(b)
		if dec.Text == TextNone {
			return Decision{}, false
		}
	}

	return dec, true
}

// universeRune is the predeclared rune, which go/types keeps apart from
// int32 although the two are identical.
var universeRune = types.Universe.Lookup("rune").Type()

func basicText(b *types.Basic) Text {
	info := b.Info()

	switch {
	case b.Kind() == types.UntypedRune || b == universeRune:
		return TextRune
	case info&types.IsBoolean != 0:
		return TextBool
	case info&types.IsUnsigned != 0:
		return TextUint
	case info&types.IsInteger != 0:
		return TextInt
	case info&types.IsFloat != 0:
		if b.Kind() == types.Float32 {
			return TextFloat32
		}

		return TextFloat64
	case info&types.IsComplex != 0:
		if b.Kind() == types.Complex64 {
			return TextComplex64
		}

		return TextComplex128
	default:
		return TextNone
	}
}

// iterOf lifts a scalar check to the containers of matching items.
func iterOf(scalar func(*Dispatcher, types.Type) (Decision, bool), rule Rule) func(*Dispatcher, types.Type) (Decision, bool) {
	return func(d *Dispatcher, t types.Type) (Decision, bool) {
		elem, iter, ok := iterElem(t.Underlying())
		if !ok {
			return Decision{}, false
		}

		dec, ok := scalar(d, elem)
		if !ok {
			return Decision{}, false
		}

		return Decision{Rule: rule, Text: dec.Text, Iter: iter, Elem: elem}, true
	}
}

// iterElem returns the item type of the iterables dispatch accepts: slices,
// arrays, pointers to arrays and func(yield func(E) bool).
func iterElem(u types.Type) (types.Type, Iter, bool) {
	switch u := u.(type) {
	case *types.Slice:
		return u.Elem(), IterIndexed, true
	case *types.Array:
		return u.Elem(), IterIndexed, true
	case *types.Pointer:
		if a, ok := u.Elem().Underlying().(*types.Array); ok {
			return a.Elem(), IterIndexed, true
		}
	case *types.Signature:
		if u.Params().Len() != 1 || u.Results().Len() != 0 || u.Variadic() {
			return nil, IterNone, false
		}

		yield, ok := u.Params().At(0).Type().Underlying().(*types.Signature)
		if !ok || yield.Params().Len() != 1 || yield.Results().Len() != 1 {
			return nil, IterNone, false
		}

		if b, ok := yield.Results().At(0).Type().Underlying().(*types.Basic); !ok || b.Kind() != types.Bool {
			return nil, IterNone, false
		}

		return yield.Params().At(0).Type(), IterSeq, true
	}

	return nil, IterNone, false
}
