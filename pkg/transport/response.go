package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/raywall/storefront/pkg/apperr"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    apperr.Kind    `json:"kind"`
	Message string         `json:"message"`
	Issues  []apperr.Issue `json:"issues"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err in the single error shape. Causes of server-side
// failures are logged, never returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.From(err)
	status := apperr.HTTPStatus(ae)

	if status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Str("kind", string(ae.Kind)).Msg("request failed")
	}

	issues := ae.Issues
	if issues == nil {
		issues = []apperr.Issue{}
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: ae.Kind, Message: ae.Message, Issues: issues}})
}

// readBody returns the request body, bounded to maxBodyBytes.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, apperr.Validation("unreadable request body")
	}
	if len(body) > maxBodyBytes {
		return nil, apperr.Validation("request body too large")
	}
	return body, nil
}

// readFields decodes a partial update body into a field map. Numbers are kept
// as json.Number so integers survive exactly.
func readFields(r *http.Request) (map[string]any, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperr.Validation("request body is required")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, apperr.Validation("malformed JSON: " + err.Error())
	}
	if fields == nil {
		return nil, apperr.Validation("request body must be a JSON object")
	}
	return fields, nil
}
