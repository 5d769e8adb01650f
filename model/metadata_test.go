package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataScan(t *testing.T) {
	t.Run("Scan nil yields empty metadata", func(t *testing.T) {
		var m Metadata
		err := m.Scan(nil)
		require.NoError(t, err)
		assert.Equal(t, Metadata{}, m)
	})

	t.Run("Scan json bytes", func(t *testing.T) {
		var m Metadata
		err := m.Scan([]byte(`{"context":"birthday","person":"Ana"}`))
		require.NoError(t, err)
		assert.Equal(t, "birthday", m["context"])
		assert.Equal(t, "Ana", m["person"])
	})

	t.Run("Scan invalid type fails", func(t *testing.T) {
		var m Metadata
		err := m.Scan(42)
		assert.Error(t, err)
	})
}

func TestMetadataValue(t *testing.T) {
	m := Metadata{"context": "deadline"}
	value, err := m.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"context":"deadline"}`, string(value.([]byte)))
}

func TestEntityListScan(t *testing.T) {
	t.Run("Scan nil yields empty list", func(t *testing.T) {
		var l EntityList
		err := l.Scan(nil)
		require.NoError(t, err)
		assert.Equal(t, EntityList{}, l)
	})

	t.Run("Scan json bytes", func(t *testing.T) {
		var l EntityList
		err := l.Scan([]byte(`[{"name":"María","type":"person","start":12,"end":17,"confidence":0.9}]`))
		require.NoError(t, err)
		require.Len(t, l, 1)
		assert.Equal(t, "María", l[0].Name)
		assert.Equal(t, EntityTypePerson, l[0].Type)
		assert.Equal(t, 0.9, l[0].Confidence)
	})
}
