// Package responder implements the response strategy set.
//
// Every strategy satisfies the Responder interface: prompt in, speakable
// text out. Strategies never let a capability failure escape as a panic and
// most absorb errors into a fixed apology so the orchestrator always has
// something to say. Each strategy owns a TTL response cache keyed by the
// exact prompt string; cache lookups happen before any external call and
// writes happen only after success.
package responder

import "context"

// Character budget for spoken responses. Longer responses are cut at the
// last sentence terminator inside the budget.
const ResponseCharBudget = 200

// Fixed apology strings. User-visible failure behavior must always be a
// complete, speakable sentence.
const (
	ApologyGeneric = "I apologize, but I encountered an error. Could you please try rephrasing your question?"
	ApologySearch  = "I apologize, but I encountered an error while searching. Could you please try rephrasing your question?"
	ApologyBusy    = "I'm having trouble processing that right now. Could you try rephrasing?"
)

// Responder is the strategy interface: one prompt, one response.
//
// Implementations may block on external capabilities. A non-nil error means
// the strategy could not produce any text at all; strategies that absorb
// failures into apologies return the apology with a nil error.
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// Func adapts a plain function to the Responder interface.
type Func func(ctx context.Context, prompt string) (string, error)

// Respond calls f.
func (f Func) Respond(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
