package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers the generic custom tags on v.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("not_blank", NotBlank)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// RegisterEnum registers tag as a case-sensitive membership check against
// allowed. Empty strings pass; combine with required when needed.
func RegisterEnum(v *validator.Validate, tag string, allowed []string) {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true
		}
		_, ok := set[val]
		return ok
	})
	enumOptions[tag] = allowed
}

// NotBlank rejects strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
