package ports

import (
	"context"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

// OracleOptions carries the grounding and response-shape hints a prompt may
// request. The oracle is free to ignore them; callers must not rely on the
// completion following any format.
type OracleOptions struct {
	UseSearch    bool
	UseMaps      bool
	JSONResponse bool
}

// TextOracle is the generative text-completion boundary. It is treated as an
// untrusted black box: (prompt) -> (text, citations). Errors are returned as
// errors; fallback policy belongs to the calling service, not here.
type TextOracle interface {
	Generate(ctx context.Context, prompt string, opts OracleOptions) (string, []domain.Citation, error)
}
