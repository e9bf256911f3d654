package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MsgDuplicateTitle is the fixed message shown when the backend reports
// a uniqueness conflict on the submission title.
const MsgDuplicateTitle = "Duplicate submission. Try a different submission title."

// ServerError is a network/server failure surfaced to the user as a
// single message. Known backend error shapes (duplicate key, per-field
// validation list) are remapped to friendlier text; everything else
// passes through with its status code.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// fieldError is one entry of the backend's validation error list.
type fieldError struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

type errorPayload struct {
	Detail json.RawMessage `json:"detail"`
}

func decodeServerError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return &ServerError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP %d - request failed", resp.StatusCode),
		}
	}

	// detail may be a plain string...
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		if strings.Contains(detail, "E11000 duplicate key") || strings.Contains(detail, "duplicate key") {
			return &ServerError{Status: resp.StatusCode, Message: MsgDuplicateTitle}
		}
		return &ServerError{Status: resp.StatusCode, Message: detail}
	}

	// ...or a list of per-field validation errors.
	var fields []fieldError
	if err := json.Unmarshal(payload.Detail, &fields); err == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, fe := range fields {
			field := "Unknown field"
			if len(fe.Loc) > 1 {
				var name string
				if json.Unmarshal(fe.Loc[1], &name) == nil && name != "" {
					field = name
				}
			}
			msg := fe.Msg
			if msg == "" {
				msg = "Field required"
			}
			parts = append(parts, field+": "+msg)
		}
		return &ServerError{Status: resp.StatusCode, Message: strings.Join(parts, ", ")}
	}

	return &ServerError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("HTTP %d - request failed", resp.StatusCode),
	}
}
