package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion tags persisted drafts. Drafts written by an older
// deployment are discarded on load instead of decoded blind.
const SchemaVersion = 2

const (
	SizeMin = 500
	SizeMax = 10000
)

var (
	ErrSchemaMismatch = errors.New("draft schema version mismatch")
	ErrIncompleteStep = errors.New("current step is incomplete")
	ErrAtLastStep     = errors.New("already at the final step")
)

type Step struct {
	Name        string `json:"name"`
	AutoAdvance bool   `json:"auto_advance"` // Single-choice steps advance on selection
}

// Steps is the fixed questionnaire sequence. Free-text and contact steps
// require an explicit continue.
var Steps = []Step{
	{Name: "lease-or-buy", AutoAdvance: true},
	{Name: "space-type", AutoAdvance: true},
	{Name: "size", AutoAdvance: false},
	{Name: "location", AutoAdvance: false},
	{Name: "budget", AutoAdvance: true},
	{Name: "timeline", AutoAdvance: true},
	{Name: "contact", AutoAdvance: false},
}

// State is the flat record accumulating one answer per step.
type State struct {
	Version     int    `json:"version"`
	CurrentStep int    `json:"current_step"`
	LeaseOrBuy  string `json:"lease_or_buy"`
	SpaceType   string `json:"space_type"`
	Size        int    `json:"size"`
	Location    string `json:"location"`
	Budget      string `json:"budget"`
	Timeline    string `json:"timeline"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
}

func NewState() *State {
	return &State{Version: SchemaVersion}
}

// Step returns the step the wizard is currently on.
func (s *State) Step() Step {
	if s.CurrentStep < 0 || s.CurrentStep >= len(Steps) {
		return Steps[len(Steps)-1]
	}
	return Steps[s.CurrentStep]
}

// CanProceed reports whether the current step's answer allows advancing.
// It is a pure function of the current step and its field(s); previously
// completed steps are not re-validated.
func (s *State) CanProceed() bool {
	switch s.Step().Name {
	case "lease-or-buy":
		return s.LeaseOrBuy != ""
	case "space-type":
		return s.SpaceType != ""
	case "size":
		return s.Size >= SizeMin && s.Size <= SizeMax
	case "location":
		return s.Location != ""
	case "budget":
		return s.Budget != ""
	case "timeline":
		return s.Timeline != ""
	case "contact":
		return s.Name != "" && s.Email != "" && s.Phone != ""
	}
	return false
}

// Next advances to the following step if the current one is complete.
func (s *State) Next() error {
	if !s.CanProceed() {
		return ErrIncompleteStep
	}
	if s.CurrentStep >= len(Steps)-1 {
		return ErrAtLastStep
	}

	s.CurrentStep++
	return nil
}

// Back retreats one step; no-op at the first step.
func (s *State) Back() {
	if s.CurrentStep > 0 {
		s.CurrentStep--
	}
}

// Complete reports whether every required field across all steps is filled,
// the precondition for submit.
func (s *State) Complete() bool {
	return s.LeaseOrBuy != "" &&
		s.SpaceType != "" &&
		s.Size >= SizeMin && s.Size <= SizeMax &&
		s.Location != "" &&
		s.Budget != "" &&
		s.Timeline != "" &&
		s.Name != "" && s.Email != "" && s.Phone != ""
}

// Responses returns the answer set as submitted to the write pipeline.
func (s *State) Responses() map[string]interface{} {
	return map[string]interface{}{
		"leaseOrBuy": s.LeaseOrBuy,
		"spaceType":  s.SpaceType,
		"size":       s.Size,
		"location":   s.Location,
		"budget":     s.Budget,
		"timeline":   s.Timeline,
	}
}

func (s *State) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a persisted draft, rejecting drafts written under a
// different schema version.
func Unmarshal(data []byte) (*State, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("malformed draft: %w", err)
	}
	if probe.Version != SchemaVersion {
		return nil, ErrSchemaMismatch
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("malformed draft: %w", err)
	}

	if state.CurrentStep < 0 {
		state.CurrentStep = 0
	}
	if state.CurrentStep >= len(Steps) {
		state.CurrentStep = len(Steps) - 1
	}

	return &state, nil
}
