package chat

import (
	"strings"

	"rgpt-backend/internal/constant"
)

// Persona is the pre-model rule layer: a fixed system instruction plus an
// exact-match table of canned replies. It is injected into the dispatcher at
// construction so the rules live in one place.
type Persona struct {
	Instruction string
	triggers    map[string]string
}

// NewPersona normalizes the trigger table (lower-cased, trimmed keys).
func NewPersona(instruction string, triggers map[string]string) Persona {
	normalized := make(map[string]string, len(triggers))
	for phrase, reply := range triggers {
		normalized[normalize(phrase)] = reply
	}
	return Persona{
		Instruction: instruction,
		triggers:    normalized,
	}
}

// DefaultPersona is the canonical RGPT configuration.
func DefaultPersona() Persona {
	return NewPersona(constant.PersonaInstructionV1, constant.PersonaTriggersV1)
}

// Canned returns the canned reply for text when a trigger matches. Matching
// is case-insensitive and whitespace-trimmed.
func (p Persona) Canned(text string) (string, bool) {
	reply, ok := p.triggers[normalize(text)]
	return reply, ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
