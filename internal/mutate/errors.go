package mutate

import (
	"errors"
	"fmt"

	"mineboard/internal/api"
	"mineboard/internal/form"
)

var ErrInFlight = errors.New("mutation already in flight")

// Kind classifies a failed mutation for display and logging. Only transport
// and server failures are operational errors; validation never reached the
// network and is not logged as one.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindServer
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

func Classify(err error) Kind {
	var te *api.TransportError
	if errors.As(err, &te) {
		return KindTransport
	}
	var se *api.ServerError
	if errors.As(err, &se) {
		return KindServer
	}
	var ve *form.ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	return KindUnknown
}

// UserMessage renders err for a toast/inline display. Server-provided
// messages pass through verbatim; transport failures get a generic line so
// raw dial errors do not leak into the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch Classify(err) {
	case KindTransport:
		return "network error: the server could not be reached"
	case KindServer, KindValidation:
		return err.Error()
	default:
		return err.Error()
	}
}

type Phase string

const (
	PhaseUpload Phase = "upload"
	PhaseCreate Phase = "create"
)

// PhaseError marks which step of a two-phase flow failed, so the user can
// tell "nothing happened" apart from "file uploaded, record not created".
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	if e.Phase == PhaseCreate {
		return fmt.Sprintf("image uploaded; record creation failed: %s", UserMessage(e.Err))
	}
	return fmt.Sprintf("upload failed: %s", UserMessage(e.Err))
}

func (e *PhaseError) Unwrap() error { return e.Err }
