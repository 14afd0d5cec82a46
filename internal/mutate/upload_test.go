package mutate

import (
	"context"
	"errors"
	"testing"

	"mineboard/internal/api"
)

func TestTwoPhase_CreateFailureRetainsUploadedURL(t *testing.T) {
	uploads := 0
	createFails := true

	tp := NewTwoPhase(
		func(ctx context.Context) (string, error) {
			uploads++
			return "https://cdn.example/img-1.png", nil
		},
		func(ctx context.Context, url string) (string, error) {
			if createFails {
				return "", &api.ServerError{StatusCode: 500, Message: "database unavailable"}
			}
			return "record-with-" + url, nil
		},
	)

	_, err := tp.Run(context.Background())
	var pe *PhaseError
	if !errors.As(err, &pe) || pe.Phase != PhaseCreate {
		t.Fatalf("expected create-phase error; got %v", err)
	}
	if got := pe.Error(); got != "image uploaded; record creation failed: database unavailable" {
		t.Fatalf("phase message: %q", got)
	}
	if tp.StagedURL() != "https://cdn.example/img-1.png" {
		t.Fatalf("staged url lost: %q", tp.StagedURL())
	}

	// Retry: the staged upload is reused, not re-sent.
	createFails = false
	result, err := tp.Run(context.Background())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if result != "record-with-https://cdn.example/img-1.png" {
		t.Fatalf("result: %q", result)
	}
	if uploads != 1 {
		t.Fatalf("expected 1 upload across retries; got %d", uploads)
	}
}

func TestTwoPhase_UploadFailureReportsUploadPhase(t *testing.T) {
	tp := NewTwoPhase(
		func(ctx context.Context) (string, error) {
			return "", &api.TransportError{Op: "POST", URL: "http://x/uploads", Err: errors.New("timeout")}
		},
		func(ctx context.Context, url string) (string, error) {
			t.Fatalf("create must not run when upload fails")
			return "", nil
		},
	)

	_, err := tp.Run(context.Background())
	var pe *PhaseError
	if !errors.As(err, &pe) || pe.Phase != PhaseUpload {
		t.Fatalf("expected upload-phase error; got %v", err)
	}
	if tp.StagedURL() != "" {
		t.Fatalf("nothing should be staged after a failed upload")
	}
}

func TestTwoPhase_ResetClearsStaging(t *testing.T) {
	tp := NewTwoPhase(
		func(ctx context.Context) (string, error) { return "https://cdn.example/a.png", nil },
		func(ctx context.Context, url string) (string, error) {
			return "", &api.ServerError{StatusCode: 500, Message: "nope"}
		},
	)
	_, _ = tp.Run(context.Background())
	if tp.StagedURL() == "" {
		t.Fatalf("expected staged url")
	}
	tp.Reset()
	if tp.StagedURL() != "" {
		t.Fatalf("reset must clear staging")
	}
}
