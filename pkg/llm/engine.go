package llm

import (
	"context"
	"time"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// backoffSchedule is the fixed retry delay sequence for transport-layer
// failures (spec §5: "up to 3 attempts with exponential backoff (1s, 2s,
// 4s)"). Only transport failures are retried; a malformed response envelope
// is not.
var backoffSchedule = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// Ground runs stage 5 end to end: it issues prompt against client with the
// configured timeout, retrying transport failures per backoffSchedule, then
// strictly parses the result. On any unrecoverable failure it returns a
// warning diagnostic and a false ok, per spec §4.7 ("degrade gracefully and
// return unchanged classifications, with a diagnostic recorded") — it never
// returns an error, since grounding failure is not analysis failure.
func Ground(ctx context.Context, client Client, prompt string, timeout time.Duration, maxRetries int) (GroundingResponse, bool, *types.Diagnostic) {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if maxRetries > len(backoffSchedule)+1 {
		maxRetries = len(backoffSchedule) + 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffSchedule[attempt-1]
			select {
			case <-ctx.Done():
				return GroundingResponse{}, false, unavailableDiagnostic(ctx.Err())
			case <-time.After(delay):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		raw, err := client.Complete(callCtx, prompt)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}

		resp, perr := ParseResponse(raw)
		if perr != nil {
			return GroundingResponse{}, false, &types.Diagnostic{
				Severity:  types.DiagWarning,
				Component: "llm-grounding",
				Message:   "response parse failed, falling back to tentative domain list: " + perr.Error(),
			}
		}
		return resp, true, nil
	}

	return GroundingResponse{}, false, unavailableDiagnostic(lastErr)
}

func unavailableDiagnostic(cause error) *types.Diagnostic {
	msg := "language-model service unavailable"
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &types.Diagnostic{
		Severity:  types.DiagWarning,
		Component: "llm-grounding",
		Message:   msg,
	}
}
