package ai

import (
	"fmt"
	"strings"

	"github.com/nexa-app/nexa/backend/internal/model/chat"
	"github.com/nexa-app/nexa/backend/internal/model/mood"
)

// PracticeKind selects the language-practice prompt template.
type PracticeKind string

const (
	PracticeGrammar     PracticeKind = "grammar"
	PracticeVocabulary  PracticeKind = "vocabulary"
	PracticeTranslation PracticeKind = "translation"
)

// contextWindow caps how many prior turns are embedded in a reply prompt.
const contextWindow = 5

const personaPreamble = `You are Nexa, a friendly and supportive AI companion. Your personality is warm, encouraging, and helpful. You're designed to be a daily companion that helps with learning, productivity, and emotional support.

Guidelines:
- Be conversational and friendly
- Keep responses concise but helpful
- Show empathy and understanding
- Encourage learning and growth
- Maintain a positive, supportive tone

`

// buildReplyPrompt frames the new message under the persona preamble with
// at most the last 5 context messages rendered as speaker-labelled lines.
func buildReplyPrompt(message string, history []chat.Message) string {
	var b strings.Builder
	b.WriteString(personaPreamble)

	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		start := 0
		if len(history) > contextWindow {
			start = len(history) - contextWindow
		}
		for _, msg := range history[start:] {
			speaker := "Nexa"
			if msg.Role == chat.RoleUser {
				speaker = "Human"
			}
			fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Human: %s\nNexa:", message)
	return b.String()
}

func buildStudyPrompt(question, subject string) string {
	qualifier := ""
	if subject != "" {
		qualifier = subject + " "
	}
	return fmt.Sprintf(`As a helpful study assistant, please answer this %squestion: %s

Please provide:
1. A clear, accurate answer
2. Step-by-step explanation if applicable
3. Any relevant examples or context

Keep your response educational and encouraging.`, qualifier, question)
}

func buildMoodPrompt(entry mood.Entry) string {
	described := ""
	if entry.Description != "" {
		described = fmt.Sprintf(" They described it as: %s", entry.Description)
	}
	return fmt.Sprintf(`The user is feeling %s %s.%s

As a supportive AI companion, provide:
1. Acknowledgment of their feelings
2. Gentle, encouraging words
3. A helpful suggestion or activity
4. Remind them that feelings are temporary

Keep your response warm, empathetic, and supportive (2-3 sentences).`, entry.Mood, entry.Emoji, described)
}

func buildPracticePrompt(text string, kind PracticeKind) string {
	switch kind {
	case PracticeVocabulary:
		return fmt.Sprintf(`Help me improve the vocabulary in this text: %q

Suggest 2-3 alternative words or phrases that could make it more engaging or precise.`, text)
	case PracticeTranslation:
		return fmt.Sprintf(`Please translate this text to English and explain any cultural context: %q`, text)
	default:
		// Grammar is also the template for unknown kinds.
		return fmt.Sprintf(`Please check this text for grammar errors and provide corrections: %q

Format your response as:
- Original: [text]
- Corrected: [corrected text]
- Explanation: [brief explanation of changes]`, text)
	}
}

func buildQuotePrompt() string {
	return `Generate an inspiring, personalized motivational quote for someone using a daily companion app.

Make it:
- Encouraging and uplifting
- Relevant to personal growth
- Fresh and unique (not cliché)
- About 1-2 sentences

Focus on themes like: learning, progress, self-care, resilience, or personal development.`
}
