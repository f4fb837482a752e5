package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/sirenrich/pkg/errors"
	"github.com/agentstation/sirenrich/pkg/logging"
)

// DecodeResponse decodes a JSON response into the target structure.
// Non-200 responses produce an APIError carrying the status code and body,
// so callers can distinguish rate limiting from other failures.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   resp.Request.URL.Path,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
