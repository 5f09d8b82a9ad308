// Package orchestrator runs one conversation cycle end to end: classify the
// utterance, produce a response through the right strategy, localize and
// split it, then speak it sentence by sentence with emotion-driven body
// language.
//
// One orchestrator serves one robot and is driven by a single goroutine.
// Every external capability failure is absorbed at its boundary; a cycle
// always ends with something spoken, even if it is a fixed apology.
package orchestrator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ucroboticslab/go-pepper/pkg/choreo"
	"github.com/ucroboticslab/go-pepper/pkg/emotion"
	"github.com/ucroboticslab/go-pepper/pkg/intent"
	"github.com/ucroboticslab/go-pepper/pkg/responder"
	"github.com/ucroboticslab/go-pepper/pkg/speech"
	"github.com/ucroboticslab/go-pepper/pkg/textproc"
	"github.com/ucroboticslab/go-pepper/pkg/units"
)

// State is the orchestrator's position in the cycle.
type State int

const (
	Idle State = iota
	Classifying
	Responding
	PostProcessing
	Speaking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Classifying:
		return "classifying"
	case Responding:
		return "responding"
	case PostProcessing:
		return "post-processing"
	case Speaking:
		return "speaking"
	default:
		return "unknown"
	}
}

// courtesyLine is spoken when the search is still running after
// courtesyDelay, so the user knows the pause is deliberate.
const courtesyLine = "Allow me to search the web for you"

const defaultCourtesyDelay = 1500 * time.Millisecond

// fallbackFraming wraps the utterance for the personality responder when
// every search leg has failed.
func fallbackFraming(utterance string) string {
	return "I notice you're asking about " + utterance + ". While I can't access current information right now, " +
		"I'd be happy to chat about this topic from my perspective. What would you like to know?"
}

// Orchestrator wires the capabilities into the conversation cycle. All
// fields are owned instances; nothing here is package-global.
type Orchestrator struct {
	personality *responder.Personality
	advanced    responder.Responder
	simple      responder.Responder
	summary     *responder.Summary
	classifier  *emotion.Classifier
	telemetry   *emotion.Telemetry
	dispatcher  *choreo.Dispatcher
	speaker     speech.Speaker
	logger      *slog.Logger

	emotionSpeech bool
	localizeUnits bool
	courtesyDelay time.Duration

	state State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithEmotionSpeech enables per-sentence emotion classification, movement
// and telemetry.
func WithEmotionSpeech(enabled bool) Option {
	return func(o *Orchestrator) { o.emotionSpeech = enabled }
}

// WithUnitLocalization enables metric conversion of responses.
func WithUnitLocalization(enabled bool) Option {
	return func(o *Orchestrator) { o.localizeUnits = enabled }
}

// WithCourtesyDelay sets how long a search may run silently before the
// courtesy line is spoken.
func WithCourtesyDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.courtesyDelay = d }
}

// WithTelemetry sets the emotion telemetry sink.
func WithTelemetry(t *emotion.Telemetry) Option {
	return func(o *Orchestrator) { o.telemetry = t }
}

// WithDispatcher sets the movement dispatcher.
func WithDispatcher(d *choreo.Dispatcher) Option {
	return func(o *Orchestrator) { o.dispatcher = d }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l.With("component", "orchestrator") }
}

// New creates an orchestrator. The personality, search and summary
// responders plus the speaker are required; emotion movement and telemetry
// are optional.
func New(
	personality *responder.Personality,
	advanced, simple responder.Responder,
	summary *responder.Summary,
	classifier *emotion.Classifier,
	speaker speech.Speaker,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		personality:   personality,
		advanced:      advanced,
		simple:        simple,
		summary:       summary,
		classifier:    classifier,
		speaker:       speaker,
		logger:        slog.Default().With("component", "orchestrator"),
		courtesyDelay: defaultCourtesyDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current cycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// HandleUtterance runs one full cycle and returns the text that was spoken.
func (o *Orchestrator) HandleUtterance(ctx context.Context, utterance string) string {
	cycleID := uuid.NewString()
	log := o.logger.With("cycle_id", cycleID)
	start := time.Now()

	o.state = Classifying
	defer func() { o.state = Idle }()

	kind := intent.Classify(utterance)
	log.Info("classified utterance", "intent", kind.String(), "chars", len(utterance))

	o.state = Responding
	response := o.respond(ctx, log, kind, utterance)
	respondMs := time.Since(start).Milliseconds()

	o.state = PostProcessing
	response = textproc.TruncateAtSentence(response, responder.ResponseCharBudget)
	if o.localizeUnits {
		response = units.ToMetric(response)
	}

	o.state = Speaking
	speakMs := o.speakSentences(ctx, log, response)

	log.Info("cycle complete",
		"respond_ms", respondMs,
		"speak_ms", speakMs,
		"total_ms", time.Since(start).Milliseconds(),
	)
	return response
}

// respond picks the primary responder for the intent and walks the fallback
// chain. It never fails; the worst outcome is a fixed apology.
func (o *Orchestrator) respond(ctx context.Context, log *slog.Logger, kind intent.Intent, utterance string) string {
	if kind == intent.ExceptionLookup {
		if answer, ok := intent.Lookup(utterance); ok {
			return answer
		}
		// Classification and lookup disagree only if the keyword tables
		// drift apart; treat it as conversational.
		kind = intent.Conversational
	}

	switch kind {
	case intent.FactualAdvanced, intent.SummaryRequest:
		return o.respondFactual(ctx, log, utterance)
	default:
		return o.respondConversational(ctx, utterance)
	}
}

func (o *Orchestrator) respondConversational(ctx context.Context, utterance string) string {
	text, err := o.personality.Respond(ctx, utterance)
	if err != nil || strings.TrimSpace(text) == "" {
		return responder.ApologyGeneric
	}
	return text
}

// respondFactual tries the advanced search responder, then the simple one,
// then frames the question for the personality responder. Search results
// are localized through the summary responder.
func (o *Orchestrator) respondFactual(ctx context.Context, log *slog.Logger, utterance string) string {
	stopCourtesy := o.startCourtesyTimer(ctx, log)
	raw := o.trySearch(ctx, o.advanced, utterance)
	stopCourtesy()

	if raw == "" {
		log.Warn("advanced search failed, trying simple search")
		stopCourtesy = o.startCourtesyTimer(ctx, log)
		raw = o.trySearch(ctx, o.simple, utterance)
		stopCourtesy()
	}

	if raw != "" {
		return o.summary.Summarize(ctx, utterance, raw)
	}

	log.Warn("all search legs failed, falling back to personality")
	text, err := o.personality.Respond(ctx, fallbackFraming(utterance))
	if err != nil || strings.TrimSpace(text) == "" {
		return responder.ApologyGeneric
	}
	return text
}

// trySearch runs a search responder and maps an error, an empty result or
// the search apology to failure so the caller advances the fallback chain.
func (o *Orchestrator) trySearch(ctx context.Context, r responder.Responder, utterance string) string {
	if r == nil {
		return ""
	}
	text, err := r.Respond(ctx, utterance)
	if err != nil || strings.TrimSpace(text) == "" || text == responder.ApologySearch {
		return ""
	}
	return text
}

// startCourtesyTimer speaks the courtesy line if it is not stopped within
// the delay. The line is spoken on its own goroutine so a slow TTS backend
// cannot delay the search result.
func (o *Orchestrator) startCourtesyTimer(ctx context.Context, log *slog.Logger) func() {
	if o.courtesyDelay <= 0 {
		return func() {}
	}
	timer := time.AfterFunc(o.courtesyDelay, func() {
		log.Debug("search running long, speaking courtesy line")
		if err := o.speaker.Speak(ctx, courtesyLine, emotion.Neutral); err != nil {
			log.Warn("courtesy line failed", "error", err)
		}
	})
	return func() { timer.Stop() }
}

// speakSentences splits, sanitizes and speaks the response one sentence at
// a time, returning total speech time in milliseconds.
func (o *Orchestrator) speakSentences(ctx context.Context, log *slog.Logger, response string) int64 {
	var total int64

	for _, sentence := range textproc.SplitSentences(response) {
		sentence = textproc.Sanitize(sentence)
		if sentence == "" {
			continue
		}

		tag := emotion.Neutral
		if o.emotionSpeech && o.classifier != nil {
			tag = o.classifier.Classify(ctx, sentence)
			if o.telemetry != nil {
				go o.telemetry.Post(ctx, sentence, tag)
			}
			if o.dispatcher != nil && o.dispatcher.Handles(tag) {
				if !o.dispatcher.Execute(ctx, tag) {
					log.Warn("movement failed", "emotion", string(tag))
				}
			}
		}

		start := time.Now()
		if err := o.speaker.Speak(ctx, sentence, tag); err != nil {
			log.Warn("speech failed", "error", err, "chars", len(sentence))
			continue
		}
		elapsed := time.Since(start).Milliseconds()
		total += elapsed
		log.Debug("spoke sentence", "chars", len(sentence), "emotion", string(tag), "tts_ms", elapsed)
	}
	return total
}
