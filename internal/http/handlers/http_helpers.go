package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// corsHeaders is the fixed permissive set attached to every response,
// success and error alike.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Headers":     "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
	"Access-Control-Allow-Methods":     "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Credentials": "true",
}

// RespondJSON writes the standard response envelope: CORS headers plus a
// JSON-encoded body. A nil content writes only the status code, which is
// how 204 replies are produced. Every handler path, including errors
// raised in middleware, must route through this function.
func RespondJSON(w http.ResponseWriter, status int, content any) {
	for key, value := range corsHeaders {
		w.Header().Set(key, value)
	}
	if content == nil {
		w.WriteHeader(status)
		return
	}

	out, err := json.Marshal(content)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}

// errNoBody signals an absent or empty request body.
var errNoBody = errors.New("request body is empty")

// readJSON reads the request body into data. An absent body yields
// errNoBody so handlers that allow body-less requests can tell it apart
// from malformed JSON.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return errNoBody
		}
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}
