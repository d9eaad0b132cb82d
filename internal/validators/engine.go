package validators

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const maxRepeatedRun = 3

var (
	// Ten-digit subscriber number, optionally preceded by a 1-3 digit country code.
	phonePattern = regexp.MustCompile(`^(\+?\d{1,3}-?)?\d{10}$`)
	namePattern  = regexp.MustCompile(`^[\p{L}\s'-]+$`)

	weakPasswordPrefixes = []string{"password", "123456", "qwerty", "admin", "user", "login"}
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field errors are keyed by the json name the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"mobile":     matches(phonePattern),
		"personname": matches(namePattern),
		"hasupper":   hasRune(unicode.IsUpper),
		"haslower":   hasRune(unicode.IsLower),
		"hasdigit":   hasRune(unicode.IsDigit),
		"hassymbol": hasRune(func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
		}),
		"norepeat":  noRepeatedRun,
		"notcommon": notCommon,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func hasRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

func noRepeatedRun(fl validator.FieldLevel) bool {
	run := 0
	var prev rune = -1
	for _, r := range fl.Field().String() {
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run > maxRepeatedRun {
			return false
		}
	}
	return true
}

func notCommon(fl validator.FieldLevel) bool {
	lower := strings.ToLower(fl.Field().String())
	for _, p := range weakPasswordPrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	return true
}

// check runs tags against value and returns the message of the first failing one.
func check(value any, tags string, messages map[string]string) Result {
	err := validate.Var(value, tags)
	if err == nil {
		return result(nil)
	}

	var errs []string
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			errs = append(errs, messageFor(fe.Tag(), messages))
		}
	}
	if len(errs) == 0 {
		errs = []string{err.Error()}
	}
	return result(errs)
}

func messageFor(tag string, messages map[string]string) string {
	if msg, ok := messages[tag]; ok {
		return msg
	}
	return messages[""]
}
