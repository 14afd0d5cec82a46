package mutate

import (
	"context"
	"strings"
)

// TwoPhase runs an upload-then-create flow. The uploaded URL is staged: if
// the create phase fails, a retry reuses the staged URL instead of uploading
// the file again (and orphaning another copy server-side).
type TwoPhase[R any] struct {
	upload func(ctx context.Context) (string, error)
	create func(ctx context.Context, url string) (R, error)

	stagedURL string
}

func NewTwoPhase[R any](
	upload func(ctx context.Context) (string, error),
	create func(ctx context.Context, url string) (R, error),
) *TwoPhase[R] {
	return &TwoPhase[R]{upload: upload, create: create}
}

// StagedURL returns the uploaded URL surviving a failed create, so the form
// can keep its image field populated across retries.
func (t *TwoPhase[R]) StagedURL() string { return t.stagedURL }

// Reset clears staging; call when the owning dialog closes.
func (t *TwoPhase[R]) Reset() { t.stagedURL = "" }

// Run performs both phases. Failures come back as *PhaseError naming the
// phase that failed.
func (t *TwoPhase[R]) Run(ctx context.Context) (R, error) {
	var zero R

	if strings.TrimSpace(t.stagedURL) == "" {
		url, err := t.upload(ctx)
		if err != nil {
			return zero, &PhaseError{Phase: PhaseUpload, Err: err}
		}
		t.stagedURL = url
	}

	result, err := t.create(ctx, t.stagedURL)
	if err != nil {
		return zero, &PhaseError{Phase: PhaseCreate, Err: err}
	}
	return result, nil
}
