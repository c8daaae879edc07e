package prereq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ConjunctionDisjunctionNegation(t *testing.T) {
	node, err := Parse("A & (B | ~C)")
	require.NoError(t, err)

	and, ok := node.(And)
	require.True(t, ok)
	require.Len(t, and.Children, 2)

	ident, ok := and.Children[0].(Identifier)
	require.True(t, ok)
	assert.Equal(t, "A", ident.Name)

	or, ok := and.Children[1].(Or)
	require.True(t, ok)
	require.Len(t, or.Children, 2)

	not, ok := or.Children[1].(Not)
	require.True(t, ok)
	inner, ok := not.Child.(Identifier)
	require.True(t, ok)
	assert.Equal(t, "C", inner.Name)
}

func TestEval_ScenarioS4(t *testing.T) {
	node, err := Parse("A & (B | ~C)")
	require.NoError(t, err)

	assert.True(t, Eval(node, map[string]bool{"A": true, "B": false, "C": false}))
	assert.False(t, Eval(node, map[string]bool{"A": false, "B": true, "C": false}))
}

func TestEval_UnknownIdentifierIsFalse(t *testing.T) {
	node, err := Parse("GHOST")
	require.NoError(t, err)
	assert.False(t, Eval(node, map[string]bool{}))
}

func TestParse_CommaAsOr(t *testing.T) {
	node, err := Parse("A,B")
	require.NoError(t, err)
	or, ok := node.(Or)
	require.True(t, ok)
	assert.Len(t, or.Children, 2)
}

func TestParse_StarAsAnd(t *testing.T) {
	node, err := Parse("A*B")
	require.NoError(t, err)
	and, ok := node.(And)
	require.True(t, ok)
	assert.Len(t, and.Children, 2)
}

func TestRender_RoundTrip(t *testing.T) {
	node, err := Parse("A & (B | ~C)")
	require.NoError(t, err)

	rendered := Render(node)
	reparsed, err := Parse(rendered)
	require.NoError(t, err)

	assert.Equal(t, Render(reparsed), rendered)
}

func TestLex_UnexpectedCharacter(t *testing.T) {
	_, err := Lex("A % B")
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestParse_UnclosedParen(t *testing.T) {
	_, err := Parse("(A & B")
	require.Error(t, err)
}
