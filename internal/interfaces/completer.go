package interfaces

import "context"

// Completer produces free text from a prompt. Implementations run at a
// fixed temperature so repeated runs keep a consistent tone.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}
