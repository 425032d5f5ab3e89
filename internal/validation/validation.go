package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const specialChars = "!@#$%^&*"

var (
	registerOnce sync.Once
	registerErr  error
)

// Register 往gin的validator引擎上挂自定义规则，并让错误里的字段名用form/json标签名，只执行一次
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validation: gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(tagName)

		rules := map[string]validator.Func{
			"has_upper":   hasRune(unicode.IsUpper),
			"has_digit":   hasRune(unicode.IsDigit),
			"has_special": hasRune(func(r rune) bool { return strings.ContainsRune(specialChars, r) }),
			"notblank":    func(fl validator.FieldLevel) bool { return strings.TrimSpace(fl.Field().String()) != "" },
			"trimmed_min": trimmedMin,
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = err
				return
			}
		}
	})
	return registerErr
}

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// trimmedMin 去掉首尾空白后再数字符，入库的值也是trim过的
func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

func hasRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

// Messages 把校验错误翻译成人能看懂的提示，顺序就是结构体字段的顺序，第一条就是最先违反的规则
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, messageFor(fe))
	}
	return msgs
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "min", "trimmed_min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return "Invalid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "has_upper":
		return fmt.Sprintf("%s must include an uppercase letter", field)
	case "has_digit":
		return fmt.Sprintf("%s must include a number", field)
	case "has_special":
		return fmt.Sprintf("%s must include a special character (%s)", field, specialChars)
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
