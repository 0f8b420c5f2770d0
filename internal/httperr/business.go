package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de regra de negócio expostos em `error_code`.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeInvalidDateOrTime   = "invalid_date_or_time"
	CodeInvalidInterval     = "invalid_interval"
	CodeTimeConflict        = "time_conflict"
	CodeTooSoon             = "too_soon"
	CodeOutsideWorkingHour  = "outside_working_hours"
	CodeServiceNotFound     = "service_not_found"
	CodeServiceUnavailable  = "service_unavailable_on_day"
	CodeCalendarNotFound    = "calendar_not_found"
	CodeClientNotFound      = "client_not_found"
	CodeSalonNotFound       = "salon_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeAttachmentNotFound  = "attachment_not_found"
	CodeInvalidState        = "invalid_state"
	CodeUnsupportedFile     = "unsupported_file"
)

// exclusion_violation: appointments_no_overlap
const pgExclusionViolation = "23P01"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness devolve o código de negócio contido em err, se houver.
func AsBusiness(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsExclusionConflict reconhece a violação da constraint de exclusão
// que impede dois agendamentos ativos sobrepostos na mesma agenda.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}
