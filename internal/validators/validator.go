package validators

import (
	"reflect"
	"strings"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	notificationTypeTag  = "notification_type"
	notificationTypeText = "{0} must be one of projectComment, like, rating, projectSubmission, projectStatus, achievement, general"
)

// CustomValidator implements echo.Validator
type CustomValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator creates a validator reporting English messages keyed by JSON field name
func NewValidator() *CustomValidator {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	cv := &CustomValidator{validate: validate, translator: translator}
	_ = validate.RegisterValidation(notificationTypeTag, func(fl validator.FieldLevel) bool {
		return models.NotificationType(fl.Field().String()).Valid()
	})
	cv.registerTranslation(notificationTypeTag, notificationTypeText)
	return cv
}

func (cv *CustomValidator) registerTranslation(tag, text string) {
	_ = cv.validate.RegisterTranslation(
		tag, cv.translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Validate validates a struct based on its tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// Translate renders validation errors as field -> message
func (cv *CustomValidator) Translate(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		key := strings.TrimPrefix(fe.Namespace(), rootNamespace(fe))
		if key == "" {
			key = fe.Field()
		}
		fields[key] = fe.Translate(cv.translator)
	}
	return fields
}

// rootNamespace is the struct name prefix of a field namespace, e.g. "BatchNotificationRequest."
func rootNamespace(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[:i+1]
	}
	return ""
}
