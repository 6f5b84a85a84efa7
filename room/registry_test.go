/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_JoinKeepsOrder(t *testing.T) {
	reg := NewRegistry()

	for i := range 5 {
		_, err := reg.Join(fmt.Sprintf("c%d", i), fmt.Sprintf("p%d", i))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"c0", "c1", "c2", "c3", "c4"}, reg.Connections())
	assert.Equal(t, 5, reg.Len())

	first, ok := reg.First()
	require.True(t, ok)
	assert.Equal(t, "c0", first.ConnID)
}

func TestRegistry_RejectsDuplicateConnection(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Join("c1", "alice")
	require.NoError(t, err)

	_, err = reg.Join("c1", "bob")
	assert.ErrorIs(t, err, ErrAlreadyJoined)
	assert.Equal(t, []PlayerEntry{{Username: "alice"}}, reg.Snapshot())
}

func TestRegistry_DuplicateNamesAllowed(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Join("c1", "sam")
	require.NoError(t, err)
	_, err = reg.Join("c2", "sam")
	require.NoError(t, err)

	assert.Equal(t, []PlayerEntry{{Username: "sam"}, {Username: "sam"}}, reg.Snapshot())
}

func TestRegistry_DefaultName(t *testing.T) {
	reg := NewRegistry()

	p, err := reg.Join("c1", "")
	require.NoError(t, err)
	assert.Equal(t, "Player", p.Username)
}

func TestRegistry_Leave(t *testing.T) {
	reg := NewRegistry()
	_, _ = reg.Join("a", "A")
	_, _ = reg.Join("b", "B")
	_, _ = reg.Join("c", "C")

	p, ok := reg.Leave("b")
	require.True(t, ok)
	assert.Equal(t, Player{ConnID: "b", Username: "B"}, p)
	assert.Equal(t, []string{"a", "c"}, reg.Connections())

	_, ok = reg.Leave("b")
	assert.False(t, ok)

	_, ok = reg.Lookup("b")
	assert.False(t, ok)

	got, ok := reg.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, "C", got.Username)
}

func TestRegistry_FirstOnEmpty(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.First()
	assert.False(t, ok)
	assert.Empty(t, reg.Connections())
	assert.Empty(t, reg.Snapshot())
}
