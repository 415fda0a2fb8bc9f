package controllers

import (
	"log"
	"unicode/utf8"

	"revivecare/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Binding tags backed by the model helpers, so request validation and the
// database CHECK constraints accept the same values.
const (
	tagGender       = "gender"
	tagReportType   = "report_type"
	tagChatLanguage = "chat_language"
	tagMedicalInfo  = "medical_info"
)

func init() {
	registerValidations()
}

// registerValidations adds the domain binding tags to gin's validator.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		log.Println("Warning: gin validator engine is not go-playground/validator")
		return
	}

	rules := map[string]validator.Func{
		tagGender: func(fl validator.FieldLevel) bool {
			return models.IsValidGender(fl.Field().String())
		},
		tagReportType: func(fl validator.FieldLevel) bool {
			return models.IsValidReportType(fl.Field().String())
		},
		tagChatLanguage: func(fl validator.FieldLevel) bool {
			return models.IsValidLanguage(fl.Field().String())
		},
		tagMedicalInfo: func(fl validator.FieldLevel) bool {
			return utf8.RuneCountInString(fl.Field().String()) <= models.MaxMedicalInfoLength
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Printf("Failed to register %s validation: %v", tag, err)
		}
	}
}
