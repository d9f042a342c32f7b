package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/slackclone/apiclient/client/internal/types"
)

// Sender issues a request through the client's interceptors. Failed
// responses come back as errors, so callers only ever see 2xx here.
type Sender interface {
	Send(ctx context.Context, req *types.Request) (*resty.Response, error)
}

// expectStatus guards against 2xx codes the endpoint does not document.
func expectStatus(op string, resp *resty.Response, want int) error {
	if resp.StatusCode() != want {
		return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode())
	}
	return nil
}

// decodeData unwraps the standard envelope into out. A missing or null data
// field leaves out untouched.
func decodeData(resp *resty.Response, out any) error {
	var env types.Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
