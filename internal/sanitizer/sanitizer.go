// Package sanitizer restricts untrusted markup fragments to a small allow-list
// of formatting tags before they are injected into rendered article bodies.
package sanitizer

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

var allowedTags = map[string]struct{}{
	"p": {}, "br": {}, "strong": {}, "em": {}, "b": {}, "i": {}, "a": {},
	"ul": {}, "ol": {}, "li": {}, "blockquote": {}, "code": {}, "pre": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "span": {},
}

// dangerousTags are removed together with everything they enclose.
var dangerousTags = map[string]struct{}{
	"script": {}, "iframe": {}, "object": {}, "embed": {}, "form": {}, "style": {},
}

var unsafeSchemes = []string{"javascript:", "data:", "vbscript:"}

var attrNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_.-]*$`)

// AllowedTags returns the tag names that survive sanitization, sorted.
func AllowedTags() []string {
	tags := make([]string, 0, len(allowedTags))
	for tag := range allowedTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Sanitize returns input with every construct outside the allow-list removed.
// Disallowed tags are unwrapped, keeping their text. Dangerous elements lose
// their content as well when a matching close tag follows; otherwise only the
// tag itself goes and the rest is processed as ordinary markup. Event handlers
// and inline styles are dropped, and href/src values with a script or data
// scheme are blanked. Sanitize never fails and Sanitize(Sanitize(x)) ==
// Sanitize(x).
func Sanitize(input string) string {
	if input == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(input))
	for pos := 0; pos < len(input); {
		pos = sanitizeFrom(&sb, input, pos)
	}
	return sb.String()
}

// sanitizeFrom writes the sanitized form of input[pos:] to sb. It returns
// len(input) once everything is consumed, or an earlier offset to restart from
// when a dangerous element turned out to be unclosed or unbalanced.
func sanitizeFrom(sb *strings.Builder, input string, pos int) int {
	z := html.NewTokenizer(strings.NewReader(input[pos:]))
	offset := pos
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return len(input)
		}
		offset += len(z.Raw())
		tok := z.Token()

		switch tt {
		case html.TextToken:
			sb.WriteString(html.EscapeString(tok.Data))
		case html.StartTagToken, html.SelfClosingTagToken:
			if _, dangerous := dangerousTags[tok.Data]; dangerous {
				if resume, closed := skipElement(z, tok.Data, &offset); !closed {
					return resume
				}
				continue
			}
			// Unwrapped elements such as textarea or xmp keep their markup.
			z.NextIsNotRawText()
			if _, ok := allowedTags[tok.Data]; !ok {
				continue
			}
			sb.WriteByte('<')
			sb.WriteString(tok.Data)
			writeAttributes(sb, tok.Attr)
			sb.WriteByte('>')
		case html.EndTagToken:
			if _, ok := allowedTags[tok.Data]; !ok {
				continue
			}
			sb.WriteString("</")
			sb.WriteString(tok.Data)
			sb.WriteByte('>')
		}
	}
}

// skipElement consumes tokens up to the end tag that balances the dangerous
// element just read, advancing offset as it goes. If the input ends first it
// reports false with the offset to resume from: just past the first matching
// end tag when one was seen, otherwise just past the opening tag.
func skipElement(z *html.Tokenizer, name string, offset *int) (int, bool) {
	resume := *offset
	sawClose := false
	depth := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return resume, false
		}
		*offset += len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tagName, _ := z.TagName()
			z.NextIsNotRawText()
			if tt == html.StartTagToken && string(tagName) == name {
				depth++
			}
		case html.EndTagToken:
			tagName, _ := z.TagName()
			if string(tagName) != name {
				continue
			}
			if !sawClose {
				sawClose = true
				resume = *offset
			}
			depth--
			if depth == 0 {
				return *offset, true
			}
		}
	}
}

func writeAttributes(sb *strings.Builder, attrs []html.Attribute) {
	for _, attr := range attrs {
		key := strings.ToLower(attr.Key)
		if attr.Namespace != "" || !attrNamePattern.MatchString(key) {
			continue
		}
		if isEventHandler(key) || key == "style" {
			continue
		}

		value := attr.Val
		if (key == "href" || key == "src") && hasUnsafeScheme(value) {
			value = ""
		}

		sb.WriteByte(' ')
		sb.WriteString(key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(value))
		sb.WriteByte('"')
	}
}

func isEventHandler(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// hasUnsafeScheme ignores the whitespace and control characters browsers
// discard while parsing a URL scheme.
func hasUnsafeScheme(value string) bool {
	normalized := strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, value)
	normalized = strings.ToLower(normalized)
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(normalized, scheme) {
			return true
		}
	}
	return false
}

// Sanitizer adapts Sanitize to interfaces that take a sanitizing capability.
// OnSanitize, when set, is invoked once per call.
type Sanitizer struct {
	OnSanitize func()
}

// New returns a Sanitizer with no hooks.
func New() *Sanitizer {
	return &Sanitizer{}
}

func (s *Sanitizer) SanitizeHTML(input string) string {
	if s != nil && s.OnSanitize != nil {
		s.OnSanitize()
	}
	return Sanitize(input)
}
