package gplist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func docWithNestedDict() *Document {
	inner := NewDict()
	inner.Set("c", Int(1))
	outer := NewDict()
	outer.Set("b", inner)
	return &Document{Root: outer}
}

func TestAddNewKey(t *testing.T) {
	doc := docWithNestedDict()
	err := Add(doc, Int(2), "b", "d")
	require.NoError(t, err)

	v, ok := Get(doc, "b", "d")
	require.True(t, ok)
	require.Equal(t, Int(2), v)
}

func TestAddExistingKeyFails(t *testing.T) {
	doc := docWithNestedDict()
	err := Add(doc, Int(99), "b", "c")
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, PathExists, gerr.Kind)
}

func TestUpdateExistingKey(t *testing.T) {
	doc := docWithNestedDict()
	err := Update(doc, Int(5), "b", "c")
	require.NoError(t, err)

	v, ok := Get(doc, "b", "c")
	require.True(t, ok)
	require.Equal(t, Int(5), v)
}

func TestUpdateMissingKeyFails(t *testing.T) {
	doc := docWithNestedDict()
	err := Update(doc, Int(5), "b", "nope")
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, PathNotFound, gerr.Kind)
}

func TestRemoveExistingKey(t *testing.T) {
	doc := docWithNestedDict()
	err := Remove(doc, "b", "c")
	require.NoError(t, err)

	v, ok := Get(doc, "b")
	require.True(t, ok)
	require.False(t, v.(*Dict).Has("c"))
}

func TestRemoveMissingParentReportsTailAndPrefix(t *testing.T) {
	doc := docWithNestedDict()
	err := Remove(doc, "b", "x", "c")
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, PathNotFound, gerr.Kind)
	require.Contains(t, gerr.Msg, `"x/c"`)
	require.Contains(t, gerr.Msg, `"b"`)
}

func TestEmptyPathFails(t *testing.T) {
	doc := docWithNestedDict()
	err := Add(doc, Int(1))
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, EmptyPath, gerr.Kind)
}

func TestArrayIndexPath(t *testing.T) {
	arr := NewArray(Int(1), Int(2), Int(3))
	doc := &Document{Root: arr}

	err := Update(doc, Int(99), 1)
	require.NoError(t, err)
	v, ok := Get(doc, 1)
	require.True(t, ok)
	require.Equal(t, Int(99), v)

	err = Remove(doc, 0)
	require.NoError(t, err)
	require.Equal(t, 2, arr.Len())
}

func TestGetMissingPathReturnsFalse(t *testing.T) {
	doc := docWithNestedDict()
	_, ok := Get(doc, "missing", "path")
	require.False(t, ok)
}

func TestAddOnEmptyDocumentFailsCleanly(t *testing.T) {
	doc := &Document{}
	err := Add(doc, Int(1), "a")
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, PathNotFound, gerr.Kind)
}
