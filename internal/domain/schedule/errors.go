package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ===============================
// Sentinels
// ===============================

var (
	ErrValidation          = errors.New("validation_error")
	ErrOutsideWorkingHours = errors.New("outside_working_hours")
	ErrLunchOverlap        = errors.New("lunch_overlap")
	ErrBlockedTime         = errors.New("blocked_time")
	ErrDoubleBooking       = errors.New("double_booking")
	ErrInvalidState        = errors.New("invalid_state")
	ErrNotFound            = errors.New("not_found")

	// linha de expediente gravada que não resolve; vira 500
	ErrStoredRule = errors.New("stored_rule_invalid")
)

// ===============================
// Validation
// ===============================

type ValidationKind string

const (
	KindInvalidTime      ValidationKind = "INVALID_TIME"
	KindInvalidWeekday   ValidationKind = "INVALID_WEEKDAY"
	KindDuplicateWeekday ValidationKind = "DUPLICATE_WEEKDAY"
	KindInvalidWindow    ValidationKind = "INVALID_WINDOW"
	KindInvalidLunch     ValidationKind = "INVALID_LUNCH"
	KindInvalidInterval  ValidationKind = "INVALID_INTERVAL"
	KindInvalidRange     ValidationKind = "INVALID_RANGE"
	KindInvalidBlockType ValidationKind = "INVALID_BLOCK_TYPE"
	KindInvalidNote      ValidationKind = "INVALID_NOTE"
	KindInvalidDuration  ValidationKind = "INVALID_DURATION"
	KindInvalidDate      ValidationKind = "INVALID_DATE"
	KindTooSoon          ValidationKind = "TOO_SOON"
	KindMissingField     ValidationKind = "MISSING_FIELD"
)

// ValidationError é sempre corrigível por quem chamou.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(kind ValidationKind, format string, args ...any) error {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsValidationKind reporta se err é um ValidationError do tipo informado.
func IsValidationKind(err error, kind ValidationKind) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Kind == kind
}

// ===============================
// Conflicts
// ===============================

// ConflictError carrega a janela que impediu a reserva.
type ConflictError struct {
	Reason error
	Start  time.Time
	End    time.Time
	Detail string
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s [%s, %s)", e.Reason, e.Start.UTC().Format(time.RFC3339), e.End.UTC().Format(time.RFC3339))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConflictError) Unwrap() error { return e.Reason }

func conflict(reason error, start, end time.Time, detail string) error {
	return &ConflictError{Reason: reason, Start: start, End: end, Detail: detail}
}

// IsConflict reporta se err é um dos conflitos de agenda.
func IsConflict(err error) bool {
	return errors.Is(err, ErrOutsideWorkingHours) ||
		errors.Is(err, ErrLunchOverlap) ||
		errors.Is(err, ErrBlockedTime) ||
		errors.Is(err, ErrDoubleBooking)
}
