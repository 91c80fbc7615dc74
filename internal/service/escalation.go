package service

import "strings"

const (
	// Reply phrases that signal the model could not answer. Matched
	// case-sensitively, as authored in the system prompt.
	escalationPhraseUncertain = "I'm not sure"
	escalationPhraseExplicit  = "escalate"

	// A message longer than this with zero retrieval matches is a real
	// question the knowledge base cannot cover.
	longMessageThreshold = 50
)

const (
	EscalationReasonUncertainReply   = "uncertain_reply"
	EscalationReasonNoKnowledgeMatch = "no_knowledge_match"
)

// EscalationDecision is computed fresh per reply and never stored as
// mutable state.
type EscalationDecision struct {
	Escalate bool
	Reason   string
}

// ShouldEscalate decides whether a conversation needs human follow-up based
// on the single current turn. Pure and stateless.
func ShouldEscalate(reply string, matches []RetrievalMatch, originalMessage string) EscalationDecision {
	if strings.Contains(reply, escalationPhraseUncertain) || strings.Contains(reply, escalationPhraseExplicit) {
		return EscalationDecision{Escalate: true, Reason: EscalationReasonUncertainReply}
	}
	if len(matches) == 0 && len(originalMessage) > longMessageThreshold {
		return EscalationDecision{Escalate: true, Reason: EscalationReasonNoKnowledgeMatch}
	}
	return EscalationDecision{}
}
