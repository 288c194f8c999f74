package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_UniqueAndNonEmpty(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.False(t, id.IsEmpty())
		assert.False(t, seen[id], "ids must be unique")
		seen[id] = true
	}
}

func TestDomainIDsStringify(t *testing.T) {
	id := NewID()
	assert.Equal(t, id.String(), DatasetID(id).String())
	assert.Equal(t, id.String(), RunID(id).String())
}

func TestNow(t *testing.T) {
	ts := Now()
	assert.False(t, ts.Time().IsZero())
}
