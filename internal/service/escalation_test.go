package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldEscalate(t *testing.T) {
	match := []RetrievalMatch{{Title: "Hours", Content: "9 to 5", Score: 0.9}}

	t.Run("uncertain reply escalates", func(t *testing.T) {
		decision := ShouldEscalate("I'm not sure about that one.", match, "short question")
		assert.True(t, decision.Escalate)
		assert.Equal(t, EscalationReasonUncertainReply, decision.Reason)
	})

	t.Run("explicit escalate phrase escalates", func(t *testing.T) {
		decision := ShouldEscalate("Let me escalate this to a human.", match, "short question")
		assert.True(t, decision.Escalate)
		assert.Equal(t, EscalationReasonUncertainReply, decision.Reason)
	})

	t.Run("phrase match is case-sensitive", func(t *testing.T) {
		decision := ShouldEscalate("i'm Not Sure what you mean", match, "short")
		assert.False(t, decision.Escalate)
	})

	t.Run("long question with no matches escalates", func(t *testing.T) {
		long := strings.Repeat("a", 51)
		decision := ShouldEscalate("Here is a confident answer.", nil, long)
		assert.True(t, decision.Escalate)
		assert.Equal(t, EscalationReasonNoKnowledgeMatch, decision.Reason)
	})

	t.Run("boundary length does not escalate", func(t *testing.T) {
		exactly50 := strings.Repeat("a", 50)
		decision := ShouldEscalate("Here is a confident answer.", nil, exactly50)
		assert.False(t, decision.Escalate)
	})

	t.Run("short question with no matches stays", func(t *testing.T) {
		decision := ShouldEscalate("Here is a confident answer.", nil, "hi")
		assert.False(t, decision.Escalate)
	})

	t.Run("confident reply with matches stays", func(t *testing.T) {
		decision := ShouldEscalate("We are open 9 to 5.", match, "what are your hours?")
		assert.False(t, decision.Escalate)
		assert.Empty(t, decision.Reason)
	})
}
