package rag

import "context"

const msgCompletionFailed = "GPT 호출 중 오류가 발생했습니다"

// Responder invokes the generative text service with a fully built prompt.
// The completion text is returned unmodified.
type Responder struct {
	completer Completer
}

// NewResponder creates a Responder over the given completion client.
func NewResponder(completer Completer) *Responder {
	return &Responder{completer: completer}
}

// Respond calls the text service; any failure surfaces as a KindService error.
func (r *Responder) Respond(ctx context.Context, prompt string) (string, error) {
	answer, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		return "", NewError(KindService, msgCompletionFailed, err)
	}
	return answer, nil
}
