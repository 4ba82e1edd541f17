package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// Validator wraps the struct validator with the domain's custom rules.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	v := validator.New()
	registerCustomValidators(v)
	return &Validator{structValidator: v}
}

// ValidateStruct validates struct tags and returns the collected field
// errors, or nil.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if fieldErrs := ToValidationErrors(err); len(fieldErrs) > 0 {
			return fieldErrs
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("notification_type", validateNotificationType)
	validate.RegisterValidation("student_status", validateStudentStatus)
	validate.RegisterValidation("theme", validateTheme)

	// Report fields by their json names for better error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, role := range models.ValidRoles() {
		if string(role) == value {
			return true
		}
	}
	return false
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, typ := range models.ValidNotificationTypes() {
		if string(typ) == value {
			return true
		}
	}
	return false
}

func validateStudentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.StudentActive) || value == string(models.StudentInactive)
}

func validateTheme(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "light" || value == "dark"
}
