package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain code", in: "res.json(x);", want: "res.json(x);"},
		{name: "double quotes", in: `f("(")`, want: `f(   )`},
		{name: "single quotes", in: `f(')')`, want: `f(   )`},
		{name: "escaped quote", in: `f("a\"(")`, want: `f(      )`},
		{name: "template", in: "f(`)`)", want: "f(   )"},
		{name: "line comment", in: "f(); // (", want: "f();     "},
		{name: "block comment", in: "f(/* ) */)", want: "f(       )"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maskCode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.in))
		})
	}
}

func TestLexState_CarriesAcrossLines(t *testing.T) {
	var st lexState

	st.mask("const s = `first (")
	assert.True(t, st.inside(), "template literal continues")

	assert.Equal(t, "  )", st.mask("a`)"))
	assert.False(t, st.inside())

	st.mask(`const q = "unterminated (`)
	assert.False(t, st.inside(), "quoted strings end at newline")

	st.mask("/* open")
	assert.True(t, st.inside())
	st.mask("close */")
	assert.False(t, st.inside())
}

func TestParenHelpers(t *testing.T) {
	assert.Equal(t, 1, parenDelta("res.status(500).json({"))
	assert.Equal(t, -1, parenDelta("});"))
	assert.Equal(t, 0, parenDelta("f(g(x))"))

	assert.Equal(t, 6, closingParen("f(g(x))", 1))
	assert.Equal(t, 5, closingParen("f(g(x))", 3))
	assert.Equal(t, -1, closingParen("f(g(x)", 1))
}
