package dispatch

import (
	"fmt"
	"go/types"
)

// Rule is a dispatch rule. Lower values take precedence.
//
//go:generate go tool stringer -type=Rule -trimprefix=Rule
type Rule int

const (
	RuleNode Rule = iota
	RuleString
	RuleText
	RuleIterNode
	RuleIterString
	RuleIterText
)

// Iterable reports whether the rule appends the items of a container.
func (r Rule) Iterable() bool {
	return r >= RuleIterNode
}

// Text is the conversion of a value to a string.
//
//go:generate go tool stringer -type=Text -trimprefix=Text
type Text int

const (
	// TextNone is used for nodes.
	TextNone Text = iota
	TextString
	TextError
	TextStringer
	// TextRune prints the character rather than its code point.
	TextRune
	TextBool
	TextInt
	TextUint
	TextFloat32
	TextFloat64
	TextComplex64
	TextComplex128
)

// Apply returns the Go expression converting operand to a string. operand
// must be an identifier or otherwise safe to use as a primary expression.
func (t Text) Apply(operand string) string {
	switch t {
	case TextString:
		return "string(" + operand + ")"
	case TextError:
		return operand + ".Error()"
	case TextStringer:
		return operand + ".String()"
	case TextRune:
		return "string(rune(" + operand + "))"
	case TextBool:
		return "strconv.FormatBool(bool(" + operand + "))"
	case TextInt:
		return "strconv.FormatInt(int64(" + operand + "), 10)"
	case TextUint:
		return "strconv.FormatUint(uint64(" + operand + "), 10)"
	case TextFloat32:
		return "strconv.FormatFloat(float64(" + operand + "), 'g', -1, 32)"
	case TextFloat64:
		return "strconv.FormatFloat(float64(" + operand + "), 'g', -1, 64)"
	case TextComplex64:
		return "strconv.FormatComplex(complex128(" + operand + "), 'g', -1, 64)"
	case TextComplex128:
		return "strconv.FormatComplex(complex128(" + operand + "), 'g', -1, 128)"
	default:
		return operand
	}
}

// NeedsStrconv reports whether Apply refers to the strconv package.
func (t Text) NeedsStrconv() bool {
	return t >= TextBool
}

// Iter is the shape of the loop over an iterable.
type Iter int

const (
	// IterNone is used for scalar rules.
	IterNone Iter = iota
	// IterIndexed ranges over a slice, an array or a pointer to an array.
	IterIndexed
	// IterSeq ranges over an iter.Seq style function.
	IterSeq
)

// Decision is the outcome of dispatching a type.
type Decision struct {
	Rule Rule
	// Text converts the value (scalar rules) or each item (iterable rules).
	Text Text
	Iter Iter
	// Type is the dispatched type and Elem the item type of iterables.
	Type types.Type
	Elem types.Type
}

// NoRuleError reports a type no rule accepts.
type NoRuleError struct {
	Type types.Type
	// What names the thing being dispatched, e.g. "embedded value".
	What   string
	Reason string

	qualifier types.Qualifier
}

func (e *NoRuleError) Error() string {
	msg := fmt.Sprintf("cannot use %s of type %s", e.What, types.TypeString(e.Type, e.qualifier))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}
