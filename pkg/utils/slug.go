package utils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s_-]+`)
	slugSeparators   = regexp.MustCompile(`[\s_]+`)
	slugDashes       = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug returns a lowercase, hyphen-separated slug for text. Accents are
// folded to their base letters and anything else outside ASCII is dropped.
func GenerateSlug(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}

	slug := strings.ToLower(folded)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SlugSet hands out slugs that are unique within one document by suffixing
// repeats with -2, -3 and so on.
type SlugSet struct {
	seen map[string]int
}

func NewSlugSet() *SlugSet {
	return &SlugSet{seen: make(map[string]int)}
}

// Next returns a unique slug for text, or "" when text has no sluggable characters.
func (s *SlugSet) Next(text string) string {
	base := GenerateSlug(text)
	if base == "" {
		return ""
	}
	if s.seen == nil {
		s.seen = make(map[string]int)
	}

	s.seen[base]++
	if s.seen[base] == 1 {
		return base
	}

	for {
		candidate := base + "-" + strconv.Itoa(s.seen[base])
		if _, taken := s.seen[candidate]; !taken {
			s.seen[candidate] = 1
			return candidate
		}
		s.seen[base]++
	}
}
