package controllers

import (
	"errors"
	"net/http"

	"github.com/302xdwill/NutriFlow/services"
)

// statusFor maps the service error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	var (
		ve *services.ValidationError
		de *services.DanglingReferenceError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &de):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
