package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for binding errors.
var trans ut.Translator

// Setup registers the validator with English translations on Gin's binding
// engine. Call once during application startup.
func Setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Use the form tag for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(v, trans)
}

// BindForm binds a form payload into dst. On failure it returns the
// translated field errors joined into one banner message, matching how the
// pages surface every other failure.
func BindForm(c *gin.Context, dst interface{}) (string, bool) {
	err := c.ShouldBind(dst)
	if err == nil {
		return "", true
	}

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			if trans != nil {
				msgs = append(msgs, fe.Translate(trans))
			} else {
				msgs = append(msgs, fe.Field()+" is invalid")
			}
		}
		return strings.Join(msgs, ", "), false
	}

	return "Invalid form submission", false
}
