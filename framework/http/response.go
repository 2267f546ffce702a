package http

import (
	"encoding/json"
	"net/http"

	"github.com/km-arc/go-formrules/framework/http/validation"
)

// Response writes JSON answers for validation endpoints.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// JSON encodes data with the given status.
func (res *Response) JSON(status int, data any) {
	h := res.w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success answers 200 with {"data": v}.
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, map[string]any{"data": v})
}

// NoContent answers 204, used when accepted input needs no echo.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error answers status with {"message": message}. Without a message the
// status text is used, e.g. "Not Found.".
//
//	res.Error(http.StatusNotFound, "Unknown rule set.")
func (res *Response) Error(status int, message ...string) {
	text := http.StatusText(status) + "."
	if len(message) > 0 && message[0] != "" {
		text = message[0]
	}
	res.JSON(status, map[string]string{"message": text})
}

// BadRequest answers 400, e.g. for a body that cannot be decoded.
func (res *Response) BadRequest(message ...string) {
	res.Error(http.StatusBadRequest, message...)
}

// NotFound answers 404.
func (res *Response) NotFound(message ...string) {
	res.Error(http.StatusNotFound, message...)
}

// ServerError answers 500. The cause belongs in the log, not the body.
func (res *Response) ServerError() {
	res.Error(http.StatusInternalServerError)
}

// ValidationError answers 422 with the bag: {"errors": {"field": [...]}}.
func (res *Response) ValidationError(bag *validation.Errors) {
	res.JSON(http.StatusUnprocessableEntity, bag)
}
