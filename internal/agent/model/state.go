package model

import (
	"github.com/cloudwego/eino/schema"
)

// TurnState is threaded through every node invocation of one Process call.
// Slots is seeded from the session's pending slots and written back while a
// flow is unfinished; it distinguishes "not yet known" (nil entry) from an
// explicitly empty value (pointer to ""), which is how a declined tax number
// is recorded.
type TurnState struct {
	UserInput     string
	History       []*schema.Message
	CurrentIntent Intent
	Slots         map[string]*string
	ToolResult    *ToolResult
	Response      string
	Finished      bool
	StepCount     int
	MaxSteps      int

	// SlotsCollected marks that every required slot was present when the
	// collector last ran; SlotsExtracted marks that extraction was attempted
	// this turn. The router uses them to avoid extraction/collection cycling.
	SlotsCollected bool
	SlotsExtracted bool
}

// EnsureSlots backfills a nil entry for every slot the schema requires for the
// current intent. Nodes call this instead of assuming a clean key set.
func (s *TurnState) EnsureSlots() {
	if s.Slots == nil {
		s.Slots = make(map[string]*string)
	}
	for _, name := range RequiredSlots(s.CurrentIntent) {
		if _, ok := s.Slots[name]; !ok {
			s.Slots[name] = nil
		}
	}
}

// AllRequiredSlotsFilled reports whether every required slot for the current
// intent is non-nil. An empty string counts as filled.
func (s *TurnState) AllRequiredSlotsFilled() bool {
	for _, name := range RequiredSlots(s.CurrentIntent) {
		if s.Slots[name] == nil {
			return false
		}
	}
	return true
}

// TurnResult is what Process hands back to the transport layer.
type TurnResult struct {
	Response      string            `json:"response"`
	History       []*schema.Message `json:"history"`
	CurrentIntent Intent            `json:"current_intent"`
	ToolUsed      bool              `json:"tool_used"`
	SessionID     string            `json:"session_id"`
}
