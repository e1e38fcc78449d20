package apiclient

import (
	"encoding/json"
	"strings"
)

const defaultErrorMessage = "An error occurred"

// APIError is a non-2xx response other than 401
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	return e.Message
}

// serverMessage extracts the "message" field from an error body. Validation
// failures may send a list of messages, which are joined.
func serverMessage(body []byte) string {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Message) == 0 {
		return defaultErrorMessage
	}

	var single string
	if err := json.Unmarshal(envelope.Message, &single); err == nil {
		if single == "" {
			return defaultErrorMessage
		}
		return single
	}

	var many []string
	if err := json.Unmarshal(envelope.Message, &many); err == nil && len(many) > 0 {
		return strings.Join(many, "; ")
	}
	return defaultErrorMessage
}
