package v1

import (
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the custom tags to gin's binding validator.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	validation.RegisterValidators(v)

	statuses := make([]string, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		statuses = append(statuses, string(s))
	}
	validation.RegisterEnum(v, "job_status", statuses)

	portals := make([]string, 0, len(domain.Portals))
	for _, p := range domain.Portals {
		portals = append(portals, string(p))
	}
	validation.RegisterEnum(v, "job_portal", portals)
}

// bindError turns a binding failure into a 400 listing every field problem.
func bindError(err error) *apperror.AppError {
	messages := validation.FormatValidationErrors(err)
	msg := "Invalid request"
	if len(messages) > 0 {
		msg = messages[0]
	}
	return apperror.BadRequest(msg).WithDetails(messages)
}
