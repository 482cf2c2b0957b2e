package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"batepapo/internal/model"
)

// maxBodyBytes limits request bodies to 1MB
const maxBodyBytes = 1 << 20

// userHeader carries the display name of the caller
const userHeader = "User"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type participantRequest struct {
	Name string `json:"name" validate:"required"`
}

type messageRequest struct {
	To   string     `json:"to" validate:"required"`
	Text string     `json:"text" validate:"required"`
	Type model.Kind `json:"type" validate:"required,oneof=message private_message"`
}

func (m messageRequest) patch() model.MessagePatch {
	return model.MessagePatch{To: &m.To, Text: &m.Text, Type: &m.Type}
}

// decodeBody reads a JSON body into dst and validates it
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("invalid request body")
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, describe(fe))
			}
			return model.NewValidationError(details...)
		}
		return model.NewValidationError(err.Error())
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// fail logs the failure under tag and writes an error body
func fail(w http.ResponseWriter, tag string, status int, msg string, err error) {
	if err != nil {
		log.Printf("[%s] ❌ %s: %v", tag, msg, err)
	} else {
		log.Printf("[%s] ❌ %s", tag, msg)
	}

	resp := errorResponse{Error: msg}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		resp.Details = ve.Details
	}
	writeJSON(w, status, resp)
}

// requireUser returns the caller name or writes a 422
func requireUser(w http.ResponseWriter, r *http.Request, tag string) (string, bool) {
	user := r.Header.Get(userHeader)
	if user == "" {
		fail(w, tag, http.StatusUnprocessableEntity, "user header is required", nil)
		return "", false
	}
	return user, true
}
