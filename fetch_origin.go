package pictor

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxOriginBytes caps how much of an origin body is read into memory per
// request, the way the client timeout already caps time.
var maxOriginBytes int64 = 64 << 20

// fetchOrigin retrieves the original image bytes. Origin images are immutable
// once uploaded, so the request asks intermediaries for a long reuse window
// (reuseSeconds, per variant). Failures are surfaced immediately; there is no
// in-request retry.
func (p *Pictor) fetchOrigin(ctx context.Context, originURL string, reuseSeconds int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, originURL, nil)
	if err != nil {
		return nil, &StageError{Stage: "fetch", Err: err}
	}
	req.Header.Set("Accept", "image/*")
	if reuseSeconds > 0 {
		req.Header.Set("Cache-Control", fmt.Sprintf("max-age=%d", reuseSeconds))
	}

	resp, err := p.origin.Do(req)
	if err != nil {
		return nil, &StageError{Stage: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StageError{Stage: "fetch", Err: fmt.Errorf("origin returned status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxOriginBytes+1))
	if err != nil {
		return nil, &StageError{Stage: "fetch", Err: err}
	}
	if int64(len(data)) > maxOriginBytes {
		return nil, &StageError{Stage: "fetch", Err: fmt.Errorf("origin body exceeds %d bytes", maxOriginBytes)}
	}
	return data, nil
}
