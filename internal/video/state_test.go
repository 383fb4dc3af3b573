package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposition_HappyPath(t *testing.T) {
	c := NewComposition()
	require.NoError(t, c.Advance(StateAssetsReady))
	require.NoError(t, c.Advance(StateEncoding))
	require.NoError(t, c.Advance(StateDone))
	assert.Equal(t, StateDone, c.State)
}

func TestComposition_NoSkipping(t *testing.T) {
	c := NewComposition()
	assert.Error(t, c.Advance(StateEncoding))
	assert.Equal(t, StateValidating, c.State)
}

func TestComposition_FailRecordsPhase(t *testing.T) {
	c := NewComposition()
	require.NoError(t, c.Advance(StateAssetsReady))
	c.Fail()

	assert.Equal(t, StateFailed, c.State)
	assert.Equal(t, StateAssetsReady, c.FailedPhase)
	assert.Error(t, c.Advance(StateEncoding))
}
