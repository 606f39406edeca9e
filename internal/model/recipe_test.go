package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBStringArrayValue(t *testing.T) {
	v, err := JSONBStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = JSONBStringArray{"2 eggs", "1 cup \"aged\" cheddar"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["2 eggs","1 cup \"aged\" cheddar"]`, v)
}

func TestJSONBStringArrayScan(t *testing.T) {
	var a JSONBStringArray
	require.NoError(t, a.Scan([]byte(`["whisk","fold"]`)))
	assert.Equal(t, JSONBStringArray{"whisk", "fold"}, a)

	require.NoError(t, a.Scan(`["bake"]`))
	assert.Equal(t, JSONBStringArray{"bake"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)

	assert.Error(t, a.Scan(42))
}
