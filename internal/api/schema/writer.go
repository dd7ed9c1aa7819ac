package schema

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Writer writes the unified responses of the API
type Writer struct {
	// OnInternalError receives every error answered using WriteInternalError
	OnInternalError func(err error)
}

// WriteJSON writes the JSON representation of value using the given HTTP status code
func (writer *Writer) WriteJSON(rw http.ResponseWriter, code int, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		writer.WriteInternalError(rw, err)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	if _, err := rw.Write(raw); err != nil {
		log.Debug().Err(err).Msg("could not write the response body")
	}
}

// WriteData wraps a single resource into a successful response
func (writer *Writer) WriteData(rw http.ResponseWriter, code int, data any) {
	writer.WriteJSON(rw, code, BuildResponse(data))
}

// WriteErrors sends an error response
func (writer *Writer) WriteErrors(rw http.ResponseWriter, code int, errs ...*Error) {
	response := &ErrorResponse{
		Status: code,
		Errors: make([]*Error, 0, len(errs)),
	}
	for _, err := range errs {
		if err.Details == nil {
			err.Details = map[string]any{}
		}
		response.Errors = append(response.Errors, err)
	}
	writer.WriteJSON(rw, code, response)
}

// WriteNotFound answers with 404 Not Found
func (writer *Writer) WriteNotFound(rw http.ResponseWriter) {
	writer.WriteErrors(rw, http.StatusNotFound, ErrNotFound)
}

// WriteInternalError reports err to the hook and answers with a generic internal error
func (writer *Writer) WriteInternalError(rw http.ResponseWriter, err error) {
	if writer.OnInternalError != nil {
		writer.OnInternalError(err)
	}
	writer.WriteErrors(rw, http.StatusInternalServerError, ErrInternal)
}
