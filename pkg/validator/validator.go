package validator

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	initOnce sync.Once
	validate *validator.Validate
	stripper *bluemonday.Policy
)

var whitespace = regexp.MustCompile(`\s+`)

func Init() {
	initOnce.Do(func() {
		validate = validator.New()
		stripper = bluemonday.StrictPolicy()
	})
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

// SanitizeString strips every tag from s. The result is HTML-escaped text.
func SanitizeString(s string) string {
	Init()
	return stripper.Sanitize(s)
}

func NormalizeSpaces(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// IsSafeLinkURL reports whether raw parses as an absolute http or https URL
// with a host, which is the only kind of link target rendered live.
func IsSafeLinkURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
