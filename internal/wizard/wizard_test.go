package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedState() *State {
	return &State{
		Version:     SchemaVersion,
		CurrentStep: len(Steps) - 1,
		LeaseOrBuy:  "lease",
		SpaceType:   "warehouse",
		Size:        2000,
		Location:    "denver",
		Budget:      "2000-3500",
		Timeline:    "asap",
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "3035551234",
	}
}

func TestStepOrder(t *testing.T) {
	names := make([]string, 0, len(Steps))
	for _, step := range Steps {
		names = append(names, step.Name)
	}

	assert.Equal(t, []string{
		"lease-or-buy", "space-type", "size", "location", "budget", "timeline", "contact",
	}, names)
}

func TestCanProceed_SizeBoundary(t *testing.T) {
	state := NewState()
	state.CurrentStep = 2 // size step

	state.Size = 499
	assert.False(t, state.CanProceed())

	state.Size = 500
	assert.True(t, state.CanProceed())

	state.Size = 10000
	assert.True(t, state.CanProceed())

	state.Size = 10001
	assert.False(t, state.CanProceed())
}

func TestCanProceed_ContactRequiresAllFields(t *testing.T) {
	state := completedState()
	assert.True(t, state.CanProceed())

	state.Phone = ""
	assert.False(t, state.CanProceed())

	state.Phone = "3035551234"
	state.Email = ""
	assert.False(t, state.CanProceed())
}

func TestNextAndBack(t *testing.T) {
	state := NewState()

	// Cannot advance past an unanswered step
	assert.ErrorIs(t, state.Next(), ErrIncompleteStep)
	assert.Equal(t, 0, state.CurrentStep)

	state.LeaseOrBuy = "lease"
	require.NoError(t, state.Next())
	assert.Equal(t, 1, state.CurrentStep)

	state.Back()
	assert.Equal(t, 0, state.CurrentStep)

	// Back at the first step is a no-op
	state.Back()
	assert.Equal(t, 0, state.CurrentStep)
}

func TestNext_AtLastStep(t *testing.T) {
	state := completedState()
	assert.ErrorIs(t, state.Next(), ErrAtLastStep)
}

func TestComplete(t *testing.T) {
	state := completedState()
	assert.True(t, state.Complete())

	state.Budget = ""
	assert.False(t, state.Complete())
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	original := completedState()
	data, err := original.Marshal()
	require.NoError(t, err)

	restored, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestUnmarshal_SchemaMismatchDiscards(t *testing.T) {
	stale := completedState()
	stale.Version = SchemaVersion - 1
	data, err := json.Marshal(stale)
	require.NoError(t, err)

	_, err = Unmarshal(data)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestUnmarshal_MalformedDraft(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version":`))
	assert.Error(t, err)
}

func TestUnmarshal_ClampsStepIndex(t *testing.T) {
	state := completedState()
	state.CurrentStep = 99
	data, err := state.Marshal()
	require.NoError(t, err)

	restored, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, len(Steps)-1, restored.CurrentStep)
}

func TestResponses(t *testing.T) {
	state := completedState()
	responses := state.Responses()

	assert.Equal(t, "warehouse", responses["spaceType"])
	assert.Equal(t, 2000, responses["size"])
	assert.Equal(t, "2000-3500", responses["budget"])
}
