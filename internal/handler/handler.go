package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"bizintel/internal/middleware"
	"bizintel/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes limits JSON request bodies.
const maxBodyBytes = 1 << 20

// maxUploadBytes limits imported files.
const maxUploadBytes = 32 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).Str("code", code).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: middleware.RequestIDFrom(r.Context()),
	})
}

// respondError maps err onto an HTTP status. Domain errors keep their message,
// anything else is logged and reported as an internal error.
func respondError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	de, ok := model.AsDomainError(err)
	if !ok {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}
	writeError(w, r, statusFor(de.Code), de.Code, de.Message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON, model.ErrCodeInvalidPeriod, model.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case model.ErrCodeConflict:
		return http.StatusConflict
	case model.ErrCodeModelNotTrained, model.ErrCodeInsufficientData:
		return http.StatusUnprocessableEntity
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return model.NewDomainError(model.ErrCodeInvalidJSON, "request body is too large")
		case errors.Is(err, io.EOF):
			return model.NewDomainError(model.ErrCodeInvalidJSON, "request body is required")
		default:
			return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body: "+err.Error())
		}
	}
	return nil
}

// pathID parses the {id} path value.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ValidationError(fmt.Sprintf("invalid %s: %q", name, r.PathValue(name)))
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, model.ValidationError(fmt.Sprintf("invalid %s parameter", name))
	}
	return v, nil
}

// queryInt64 parses an optional positive ID query parameter.
func queryInt64(r *http.Request, name string) (int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, model.ValidationError(fmt.Sprintf("invalid %s parameter", name))
	}
	return v, nil
}

// queryRange parses the optional startDate and endDate query parameters.
func queryRange(r *http.Request) (model.DateRange, error) {
	var rng model.DateRange
	bounds := []struct {
		name string
		dst  *model.Date
	}{
		{"startDate", &rng.Start},
		{"endDate", &rng.End},
	}
	for _, b := range bounds {
		s := strings.TrimSpace(r.URL.Query().Get(b.name))
		if s == "" {
			continue
		}
		d, err := model.ParseDate(s)
		if err != nil {
			return model.DateRange{}, model.ValidationError(fmt.Sprintf("invalid %s: %v", b.name, err))
		}
		*b.dst = d
	}
	return rng, rng.Validate()
}

// page parses limit and offset.
func page(r *http.Request) (limit, offset int, err error) {
	if limit, err = queryInt(r, "limit", 0); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(r, "offset", 0); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

// attachment marks the response as a file download.
func attachment(w http.ResponseWriter, name, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}
