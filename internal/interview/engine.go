// Package interview implements the client-side session controller: the
// state machine that sequences session creation, question delivery,
// answer submission, feedback, and completion.
package interview

import (
	"context"

	"github.com/querybox-dev/querybox/internal/api"
)

// Engine is the remote question-generation and answer-scoring service.
// It is a black box: the controller assumes nothing beyond these four
// operations and their documented response shapes. *api.Client satisfies
// it; tests substitute a deterministic fake.
type Engine interface {
	Start(ctx context.Context, role, mode string, n int) (*api.StartResponse, error)
	Submit(ctx context.Context, sessionID, answer string) (*api.SubmitResponse, error)
	Summary(ctx context.Context, sessionID string) (*api.SummaryPayload, error)
	Health(ctx context.Context) (*api.HealthStatus, error)
}
