package client

import (
	"context"
	"fmt"
	"io"

	"github.com/boskovicgroup/bottchercomplexity/pkg/complexity"
)

// Result is one scored molecule as returned by the API.
type Result struct {
	Name          string                    `json:"name,omitempty"`
	Score         float64                   `json:"score"`
	AtomCount     int                       `json:"atom_count"`
	Contributions []complexity.Contribution `json:"contributions,omitempty"`
}

// BatchEntry is one record's outcome in a batch response.  Exactly one of
// Result and Error is set.
type BatchEntry struct {
	Index  int       `json:"index"`
	Result *Result   `json:"result,omitempty"`
	Error  *APIError `json:"error,omitempty"`
}

// BatchResult summarises a batch scoring run.
type BatchResult struct {
	Scored  int          `json:"scored"`
	Failed  int          `json:"failed"`
	Entries []BatchEntry `json:"entries"`
}

type scoreRequest struct {
	Molfile string `json:"molfile"`
}

// scorePath builds the endpoint path with the diagnostics query parameter.
func scorePath(base string, diagnostics bool) string {
	if diagnostics {
		return base + "?diagnostics=true"
	}
	return base
}

// Score submits a single V2000 connection table and returns its complexity
// score.  With diagnostics enabled the result carries per-atom contribution
// records.
func (c *Client) Score(ctx context.Context, molfile string, diagnostics bool) (*Result, error) {
	if molfile == "" {
		return nil, fmt.Errorf("client: molfile is required")
	}

	var result Result
	err := c.post(ctx, scorePath("/api/v1/score", diagnostics), scoreRequest{Molfile: molfile}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ScoreBatch submits a multi-record SDF stream.  Per-record failures are
// reported inline in the returned BatchResult, not as an error.
func (c *Client) ScoreBatch(ctx context.Context, sdfStream io.Reader, diagnostics bool) (*BatchResult, error) {
	payload, err := io.ReadAll(sdfStream)
	if err != nil {
		return nil, fmt.Errorf("client: failed to read sdf stream: %w", err)
	}

	var result BatchResult
	err = c.post(ctx, scorePath("/api/v1/score/batch", diagnostics), payload, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/healthz", nil)
}

// Ready checks the readiness endpoint.
func (c *Client) Ready(ctx context.Context) error {
	return c.get(ctx, "/readyz", nil)
}
