package httpapi

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"attendsync/internal/apperr"
	"attendsync/internal/identity"
)

const (
	notBlankTag = "notblank"
	roleTag     = "role"
)

var (
	translator    ut.Translator
	setupValidate sync.Once
)

// setupValidator configures gin's validator: JSON field names in errors,
// English messages and the custom tags used by request structs.
func setupValidator() {
	setupValidate.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, translator)

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation(notBlankTag, notBlank)
		_ = v.RegisterValidation(roleTag, validRole)
		v.RegisterStructValidation(registerStructValidation, registerRequest{})

		noop := func(ut.Translator) error { return nil }
		for _, tag := range []string{notBlankTag, roleTag, "batch_required"} {
			_ = v.RegisterTranslation(tag, translator, noop, translateCustom)
		}
	})
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " cannot be blank"
	case roleTag:
		return "role must be student or faculty"
	case "batch_required":
		return "batch is required for students"
	default:
		return fe.Error()
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func validRole(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && identity.Role(s).Valid()
}

func registerStructValidation(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(registerRequest)
	if !ok {
		return
	}
	if identity.Role(req.Role) == identity.RoleStudent && strings.TrimSpace(req.Batch) == "" {
		sl.ReportError(req.Batch, "batch", "Batch", "batch_required", "")
	}
}

// bindError turns a binding failure into a BadRequest with readable field
// messages.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && translator != nil {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Translate(translator))
		}
		return apperr.Wrap(apperr.BadRequest, strings.Join(msgs, "; "), err)
	}
	return apperr.Wrap(apperr.BadRequest, "invalid request body", err)
}
