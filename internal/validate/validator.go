// Package validate binds go-playground/validator to Echo and turns its
// field errors into an apperr.ValidationError carrying the configured,
// human-readable message of every violated field.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/model"
)

// MsgAddressRequired is reported when a bootcamp is created without an address.
const MsgAddressRequired = "Please add an address"

var (
	websiteRe = regexp.MustCompile(`https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)`)
	emailRe   = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// messages maps "<json field>.<tag>" to the message reported for it.
var messages = map[string]string{
	"name.required":        "Please add a name",
	"name.max":             "Name cannot be more than 50 characters",
	"description.required": "Please add a description",
	"description.max":      "Description cannot be more than 500 characters",
	"website.website":      "Please add a valid URL with http or https",
	"phone.max":            "Phone number cannot be more than 20 characters",
	"email.required":       "Please add an email",
	"email.looseemail":     "Please add a valid email",
	"careers.required":     "Please add at least one career",
	"careers.min":          "Please add at least one career",
	"averageRating.min":    "Rating must be at least 1",
	"averageRating.max":    "Rating cannot be more than 10",
	"title.required":       "Please add a course title",
	"title.max":            "Title cannot be more than 100 characters",
	"weeks.required":       "Please add number of weeks",
	"tuition.required":     "Please add a tuition cost",
	"minimumSkill.required": "Please add a minimum skill",
	"minimumSkill.oneof":   "Minimum skill must be beginner, intermediate or advanced",
	"password.required":    "Please add a password",
	"password.min":         "Password must be at least 6 characters",
	"role.oneof":           "Role must be user or publisher",
}

// Validator implements echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the bootcamp-specific rules registered:
// website, looseemail and career.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on empty tags or nil funcs.
	_ = v.RegisterValidation("website", func(fl validator.FieldLevel) bool {
		return websiteRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("career", func(fl validator.FieldLevel) bool {
		return model.IsCareer(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate checks i against its struct tags.  It returns nil or an
// *apperr.ValidationError with one violation per failed field rule, in
// field declaration order.
func (val *Validator) Validate(i interface{}) error {
	err := val.v.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &apperr.ValidationError{}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		out.Add(field, message(field, fe))
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	if fe.Tag() == "career" {
		return fmt.Sprintf("%v is not a valid career", fe.Value())
	}
	if m, ok := messages[field+"."+fe.Tag()]; ok {
		return m
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
