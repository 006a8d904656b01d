package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	jujuerrors "github.com/juju/errors"
)

var errInvalidJSON = errors.New("invalid JSON body")

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// requestFields holds the top-level members of a JSON object body.
type requestFields map[string]interface{}

// decodeFields reads a JSON body without binding field types. An empty body or a top-level
// array yields no fields. Scalars, trailing data and syntax errors are rejected.
func decodeFields(r *http.Request) (requestFields, error) {
	fields := requestFields{}
	if r.Body == nil {
		return fields, nil
	}
	dec := json.NewDecoder(r.Body)
	var body interface{}
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		return nil, errInvalidJSON
	}
	if err := dec.Decode(new(interface{})); !errors.Is(err, io.EOF) {
		return nil, errInvalidJSON
	}

	switch v := body.(type) {
	case map[string]interface{}:
		return requestFields(v), nil
	case []interface{}:
		return fields, nil
	default:
		return nil, errInvalidJSON
	}
}

// String returns the member as a string; any other JSON type reports false.
func (f requestFields) String(key string) (string, bool) {
	s, ok := f[key].(string)
	return s, ok
}

// Text renders the member the way string interpolation of a JSON value would.
func (f requestFields) Text(key string) string {
	v, ok := f[key]
	if !ok {
		return ""
	}
	return jsonText(v)
}

func jsonText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == 0 {
			return "0"
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			if item != nil {
				parts[i] = jsonText(item)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func isNotFound(err error) bool {
	return jujuerrors.Is(err, jujuerrors.NotFound)
}
