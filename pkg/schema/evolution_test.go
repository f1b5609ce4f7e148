package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cols(pairs ...string) Columns {
	var c Columns
	for i := 0; i+1 < len(pairs); i += 2 {
		c = append(c, Column{Name: pairs[i], Type: pairs[i+1]})
	}
	return c
}

func TestIncompatibleColumns(t *testing.T) {
	// primitive to primitive
	assert.Empty(t, IncompatibleColumns(cols("a", "int"), cols("a", "bigint")))
	assert.Empty(t, IncompatibleColumns(cols("a", "INT"), cols("a", "String")))
	// identical complex types
	assert.Empty(t, IncompatibleColumns(cols("a", "array<int>"), cols("a", "array<int>")))
	// primitive to complex
	assert.Equal(t, []string{"a"}, IncompatibleColumns(cols("a", "int"), cols("a", "array<int>")))
	// complex to complex
	assert.Equal(t, []string{"b"}, IncompatibleColumns(cols("a", "int", "b", "map<string,int>"), cols("a", "int", "b", "map<string,bigint>")))
	// the reported name is the new one
	assert.Equal(t, []string{"renamed"}, IncompatibleColumns(cols("a", "int"), cols("renamed", "array<int>")))
	// columns past the shorter list are not checked
	assert.Empty(t, IncompatibleColumns(cols("a", "int"), cols("a", "int", "b", "array<int>")))
	assert.Empty(t, IncompatibleColumns(cols("a", "int", "b", "array<int>"), cols("a", "int")))
	assert.Empty(t, IncompatibleColumns(nil, nil))
}

func TestCheckCompatibleTypes(t *testing.T) {
	require.NoError(t, CheckCompatibleTypes(cols("a", "int"), cols("a", "double")))

	err := CheckCompatibleTypes(cols("a", "int", "b", "int"), cols("a", "array<int>", "b", "struct<x:int>"))
	var typesErr *IncompatibleTypesError
	require.ErrorAs(t, err, &typesErr)
	assert.Equal(t, []string{"a", "b"}, typesErr.Columns)
	assert.Contains(t, err.Error(), "a,b")
}

func TestCheckNoMiddleInsertOrDelete(t *testing.T) {
	// appending and removing at the end is fine
	assert.NoError(t, CheckNoMiddleInsertOrDelete(cols("a", "int", "b", "int"), cols("a", "int", "b", "int", "c", "int")))
	assert.NoError(t, CheckNoMiddleInsertOrDelete(cols("a", "int", "b", "int", "c", "int"), cols("a", "int")))
	assert.NoError(t, CheckNoMiddleInsertOrDelete(nil, cols("a", "int")))

	// inserting in the middle is not
	err := CheckNoMiddleInsertOrDelete(cols("a", "int", "c", "int"), cols("a", "int", "b", "int", "c", "int"))
	var evoErr *EvolutionError
	require.ErrorAs(t, err, &evoErr)
	assert.Equal(t, "c", evoErr.OldName)
	assert.Equal(t, "b", evoErr.NewName)

	// nor is deleting from the middle
	err = CheckNoMiddleInsertOrDelete(cols("a", "int", "b", "int", "c", "int"), cols("a", "int", "c", "int"))
	require.ErrorAs(t, err, &evoErr)
	assert.Equal(t, "b", evoErr.OldName)
	assert.Equal(t, "c", evoErr.NewName)
}

// Lists of the same length pass without comparing names: a same-length
// change is never an insert or delete, even when b was renamed to x.
func TestCheckNoMiddleInsertOrDeleteEqualLengthShortCircuit(t *testing.T) {
	assert.NoError(t, CheckNoMiddleInsertOrDelete(
		cols("a", "int", "b", "int", "c", "int"),
		cols("a", "int", "x", "int", "c", "int"),
	))
}

func TestCheckColumnChange(t *testing.T) {
	assert.NoError(t, CheckColumnChange(cols("a", "int"), cols("a", "bigint", "b", "array<int>")))

	err := CheckColumnChange(cols("a", "int", "b", "int"), cols("x", "int"))
	var evoErr *EvolutionError
	assert.ErrorAs(t, err, &evoErr)

	err = CheckColumnChange(cols("a", "int"), cols("a", "map<int,int>"))
	var typesErr *IncompatibleTypesError
	assert.ErrorAs(t, err, &typesErr)
	assert.False(t, errors.As(err, &evoErr))
}
