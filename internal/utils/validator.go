package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/skillforge/course-service/internal/models"
)

// Validator wraps a configured validator.Validate instance.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// ValidateStruct validates struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// Custom validation functions

func ValidateContentType(fl validator.FieldLevel) bool {
	validTypes := []models.ContentType{
		models.ContentFile,
		models.ContentVideo,
		models.ContentText,
		models.ContentQuiz,
		models.ContentDownload,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func ValidateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RoleTeacher,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

func ValidateAnnouncementPriority(fl validator.FieldLevel) bool {
	validPriorities := []models.AnnouncementPriority{
		models.PriorityLow,
		models.PriorityNormal,
		models.PriorityHigh,
	}

	value := fl.Field().String()
	for _, validPriority := range validPriorities {
		if string(validPriority) == value {
			return true
		}
	}
	return false
}

var supportedPaymentMethods = []string{"card", "bank_transfer", "ussd", "wallet"}

func ValidatePaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, method := range supportedPaymentMethods {
		if method == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("content_type", ValidateContentType)
	validate.RegisterValidation("user_role", ValidateUserRole)
	validate.RegisterValidation("announcement_priority", ValidateAnnouncementPriority)
	validate.RegisterValidation("payment_method", ValidatePaymentMethod)

	// Report json field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
