package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneration_UpdateProgress(t *testing.T) {
	g := &Generation{ID: "gen-1", Status: StatusPending}

	require.NoError(t, g.UpdateProgress(30, "hmm_mesh_generation", ""))
	assert.Equal(t, StatusProcessing, g.Status)
	assert.Equal(t, 30, g.Progress)
	assert.Equal(t, "hmm_mesh_generation", g.Step)

	require.NoError(t, g.UpdateProgress(100, "done", ""))
	assert.Equal(t, StatusSuccess, g.Status)
	assert.True(t, g.Status.IsTerminal())
}

func TestGeneration_UpdateProgress_Error(t *testing.T) {
	g := &Generation{ID: "gen-1", Status: StatusProcessing}

	require.NoError(t, g.UpdateProgress(60, "mesh_loading", "mesher produced empty geometry"))
	assert.Equal(t, StatusFailure, g.Status)
	assert.Equal(t, "mesher produced empty geometry", g.Error)
}

func TestGeneration_UpdateProgress_OutOfRange(t *testing.T) {
	g := &Generation{}

	assert.ErrorIs(t, g.UpdateProgress(101, "x", ""), ErrValidation)
	assert.ErrorIs(t, g.UpdateProgress(-1, "x", ""), ErrValidation)
}

func TestProgressSink_NilSafe(t *testing.T) {
	var sink ProgressSink
	sink.Report(50, "anything") // must not panic

	var got []ProgressEvent
	sink = func(e ProgressEvent) { got = append(got, e) }
	sink.Report(25, "heightmap_preprocessing")

	require.Len(t, got, 1)
	assert.Equal(t, 25, got[0].Percent)
}
