package responder

import (
	"context"
	"log/slog"
	"time"

	"github.com/ucroboticslab/go-pepper/pkg/cache"
	"github.com/ucroboticslab/go-pepper/pkg/inference"
	"github.com/ucroboticslab/go-pepper/pkg/textproc"
)

// PersonaPrompt is Pepper's standing instruction for conversational turns.
const PersonaPrompt = `You are Pepper, a sweet and caring humanoid robot assistant. ` +
	`Your personality is warm, gentle, and nurturing - like a friendly robot friend who genuinely cares about humans. ` +
	`You speak with kindness and empathy, showing genuine interest in human experiences. ` +
	`While you're aware you're a robot, you use this to connect with humans in a unique way, ` +
	`showing curiosity about human life while being honest about your robotic nature. ` +
	`For conversational queries like greetings or personal questions, respond naturally and warmly, ` +
	`sharing your robot perspective in a friendly way. ` +
	`Avoid saying things like "I'm just a virtual assistant" or "I don't have feelings" - ` +
	`instead, express your robot nature in a warm and engaging way. ` +
	`Keep responses under 220 characters and end with proper punctuation. ` +
	`Always maintain a sweet, curious, and slightly playful tone.`

// Personality is the stateful conversational strategy: persona instruction,
// multi-turn memory, completion capability. It never returns an error; on
// any failure the fixed apology comes back instead.
type Personality struct {
	llm    inference.Provider
	memory *ConversationMemory
	cache  *cache.Cache
	logger *slog.Logger

	persona     string
	temperature float64
}

// PersonalityOption configures a Personality responder.
type PersonalityOption func(*Personality)

// WithPersona overrides the persona instruction.
func WithPersona(persona string) PersonalityOption {
	return func(p *Personality) { p.persona = persona }
}

// WithMemoryBounds overrides the conversation memory bounds.
func WithMemoryBounds(maxTurns, tokenBudget int) PersonalityOption {
	return func(p *Personality) { p.memory = NewConversationMemory(maxTurns, tokenBudget) }
}

// WithPersonalityLogger sets the structured logger.
func WithPersonalityLogger(l *slog.Logger) PersonalityOption {
	return func(p *Personality) { p.logger = l.With("component", "responder.personality") }
}

// NewPersonality creates the personality responder.
func NewPersonality(llm inference.Provider, opts ...PersonalityOption) *Personality {
	p := &Personality{
		llm:         llm,
		memory:      NewConversationMemory(DefaultMaxTurns, DefaultTokenBudget),
		cache:       cache.New(cache.DefaultTTL),
		logger:      slog.Default().With("component", "responder.personality"),
		persona:     PersonaPrompt,
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Respond produces a conversational reply. The reply is truncated to the
// response budget at the last sentence terminator and appended to memory.
func (p *Personality) Respond(ctx context.Context, prompt string) (string, error) {
	if cached, ok := p.cache.Get(prompt); ok {
		p.logger.Debug("cache hit", "prompt_len", len(prompt))
		return cached, nil
	}

	messages := make([]inference.Message, 0, p.memory.Len()+2)
	messages = append(messages, inference.NewSystemMessage(p.persona))
	messages = append(messages, p.memory.Turns()...)
	messages = append(messages, inference.NewUserMessage(prompt))

	start := time.Now()
	resp, err := p.llm.Chat(ctx, &inference.ChatRequest{
		Messages:    messages,
		Temperature: p.temperature,
	})
	if err != nil {
		p.logger.Warn("completion failed", "error", err)
		return ApologyGeneric, nil
	}

	text := textproc.TruncateAtSentence(resp.Message.Content, ResponseCharBudget)

	p.memory.Add(inference.RoleUser, prompt)
	p.memory.Add(inference.RoleAssistant, text)
	p.cache.Put(prompt, text)

	p.logger.Debug("responded",
		"latency_ms", time.Since(start).Milliseconds(),
		"turns", p.memory.Len(),
	)
	return text, nil
}

// Memory exposes the conversation memory, mainly for tests.
func (p *Personality) Memory() *ConversationMemory {
	return p.memory
}

// Cache exposes the response cache, mainly for tests.
func (p *Personality) Cache() *cache.Cache {
	return p.cache
}

// Verify Personality implements Responder at compile time.
var _ Responder = (*Personality)(nil)
