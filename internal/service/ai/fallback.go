package ai

import (
	"fmt"

	"github.com/nexa-app/nexa/backend/internal/model/mood"
)

// replyFallbacks is the fixed set a failed reply generation draws from.
// The order matters: selection is pseudo-random over this list and tests
// assert membership, not position.
var replyFallbacks = []string{
	"I'm having a moment of technical difficulty, but I'm here for you! Could you try asking that again?",
	"Hmm, I seem to be having trouble processing that. Mind rephrasing your question?",
	"I'm experiencing some connectivity issues right now. Let's try that again in a moment!",
	"Sorry, I didn't catch that properly. Could you help me out by asking again?",
}

const (
	studyFallback    = "I'm having trouble right now, but I'd love to help you study! Try asking your question again in a moment."
	practiceFallback = "I'm having trouble with language practice right now. Please try again in a moment!"
	quoteFallback    = "Every step forward, no matter how small, is progress. You're doing better than you think! ✨"
)

func moodFallback(entry mood.Entry) string {
	return fmt.Sprintf("I hear you're feeling %s %s. Your feelings are valid, and I'm here with you. Remember that emotions come and go like waves - this feeling will pass. 💙", entry.Mood, entry.Emoji)
}
