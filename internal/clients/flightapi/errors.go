package flightapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	derr "github.com/ozzus/hopcraft/internal/domain/errors"
)

// parseAPIError reads the {"detail": ...} convention. An unreadable body falls back to the
// status text; a readable body without a detail falls back to "Errore <code>".
func parseAPIError(resp *http.Response) error {
	apiErr := &derr.APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		apiErr.Detail = http.StatusText(resp.StatusCode)
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		apiErr.Detail = http.StatusText(resp.StatusCode)
		return apiErr
	}

	apiErr.Detail = detailText(body.Detail)
	return apiErr
}

func detailText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var issues []validationIssue
	if err := json.Unmarshal(raw, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if m := strings.TrimSpace(issue.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	return string(raw)
}
