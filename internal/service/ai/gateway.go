package ai

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/nexa-app/nexa/backend/internal/model/chat"
	"github.com/nexa-app/nexa/backend/internal/model/mood"
)

// Generator issues a single text-generation call. It is the only seam the
// gateway needs from the remote model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var errGeneratorUnavailable = errors.New("no generator configured")

// Gateway translates domain requests into generation calls. Every public
// operation is total: when the call errors, times out, or comes back
// empty, the caller still receives usable text from a fixed fallback set.
type Gateway struct {
	gen     Generator
	timeout time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithTimeout bounds each generation call. Expiry is treated like any
// other generation failure.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRandSource seeds the fallback selection, for deterministic tests.
func WithRandSource(src rand.Source) Option {
	return func(g *Gateway) {
		g.rng = rand.New(src)
	}
}

// NewGateway wires a gateway around gen. A nil gen is allowed: the gateway
// then answers from fallbacks only, so the rest of the system keeps
// working without model credentials.
func NewGateway(gen Generator, opts ...Option) *Gateway {
	g := &Gateway{
		gen:     gen,
		timeout: 30 * time.Second,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateReply answers a conversational message, framing it with up to the
// last 5 context messages.
func (g *Gateway) GenerateReply(ctx context.Context, message string, history []chat.Message) string {
	text, err := g.generate(ctx, buildReplyPrompt(message, history))
	if err != nil {
		log.Printf("[ai] reply generation failed: %v", err)
		return g.pickReplyFallback()
	}
	return text
}

// StudyAssist answers a study question, optionally scoped to a subject.
func (g *Gateway) StudyAssist(ctx context.Context, question, subject string) string {
	text, err := g.generate(ctx, buildStudyPrompt(question, subject))
	if err != nil {
		log.Printf("[ai] study assist failed: %v", err)
		return studyFallback
	}
	return text
}

// MoodSupport produces a short supportive response to a mood entry. The
// fallback still names the mood and emoji.
func (g *Gateway) MoodSupport(ctx context.Context, entry mood.Entry) string {
	text, err := g.generate(ctx, buildMoodPrompt(entry))
	if err != nil {
		log.Printf("[ai] mood support failed: %v", err)
		return moodFallback(entry)
	}
	return text
}

// LanguagePractice reviews text with one of the grammar, vocabulary or
// translation templates.
func (g *Gateway) LanguagePractice(ctx context.Context, text string, kind PracticeKind) string {
	out, err := g.generate(ctx, buildPracticePrompt(text, kind))
	if err != nil {
		log.Printf("[ai] language practice failed: %v", err)
		return practiceFallback
	}
	return out
}

// MotivationalQuote produces a short personal-growth quote.
func (g *Gateway) MotivationalQuote(ctx context.Context) string {
	text, err := g.generate(ctx, buildQuotePrompt())
	if err != nil {
		log.Printf("[ai] quote generation failed: %v", err)
		return quoteFallback
	}
	return text
}

func (g *Gateway) generate(ctx context.Context, prompt string) (string, error) {
	if g.gen == nil {
		return "", errGeneratorUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty generation result")
	}
	return text, nil
}

func (g *Gateway) pickReplyFallback() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return replyFallbacks[g.rng.Intn(len(replyFallbacks))]
}
