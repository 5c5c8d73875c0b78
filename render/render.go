// Package render writes the envelope and error bodies documented by the
// openapi package, and binds JSON request bodies.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vitalvas/baasdoc/i18n"
	"github.com/vitalvas/baasdoc/model"
	"github.com/vitalvas/baasdoc/respcode"
)

// ErrTrailingData is returned by BindJSON when the body holds more than one
// JSON value.
var ErrTrailingData = errors.New("render: unexpected trailing data after JSON value")

// JSON encodes v and writes it with the given status. The body is encoded
// before the header is sent, so an encoding failure still yields a clean
// 500 response.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// OK writes data wrapped in the success envelope. model.Unit payloads are
// written as a bare {"code":"OK"}.
func OK[T any](w http.ResponseWriter, status int, data T) {
	if _, ok := any(data).(model.Unit); ok {
		JSON(w, status, model.Done{Code: model.CodeOK})
		return
	}
	JSON(w, status, model.OK(data))
}

// Error writes the error body of code with the code's HTTP status. The
// message is translated with the printer stored in the request context.
func Error(w http.ResponseWriter, r *http.Request, code respcode.Code) {
	var msg string
	if r != nil {
		msg = respcode.Text(code, i18n.FromContext(r.Context()))
	} else {
		msg = code.Message
	}

	JSON(w, code.Status, model.ErrorBody{Code: code.Value, Message: msg})
}

// BindJSON decodes the request body into v. Unknown fields are rejected
// unless allowUnknownFields is true, and exactly one JSON value must be
// present.
func BindJSON(r *http.Request, v any, allowUnknownFields ...bool) error {
	dec := json.NewDecoder(r.Body)

	if len(allowUnknownFields) == 0 || !allowUnknownFields[0] {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}

	return nil
}
