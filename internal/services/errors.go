package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/mentorhub/dashboard-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Student specific errors
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentEmailTaken    = errors.New("student email already in use")
	ErrNoSessionsRemaining  = errors.New("student has no sessions remaining")
	ErrPaymentExceedsTotal  = errors.New("payment would exceed the student's total")
	ErrStudentNotAssignable = errors.New("student cannot be assigned in current state")

	// User specific errors
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidRole       = errors.New("invalid user role")
	ErrNotAMentor        = errors.New("user is not a mentor")
	ErrNotACoordinator   = errors.New("user is not a coordinator")
	ErrSupervisorInvalid = errors.New("supervisor must be a coordinator")

	// Cohort errors
	ErrBatchNotFound   = errors.New("batch not found")
	ErrPackageNotFound = errors.New("package not found")

	// Session errors
	ErrNoActiveSession = errors.New("no active session user")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message, Context: context}
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound reports whether err represents a missing resource, including
// the raw gorm record-not-found it usually comes from.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrBatchNotFound) ||
		errors.Is(err, ErrPackageNotFound)
}

func IsValidation(err error) bool {
	var ve ValidationErrors
	var single *ValidationError
	return errors.As(err, &ve) || errors.As(err, &single) || errors.Is(err, ErrValidationFailed)
}

func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe) || errors.Is(err, ErrForbidden)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrStudentEmailTaken)
}
