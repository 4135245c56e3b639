package validator

import (
	"testing"

	"fairway-content-backend/internal/models"
)

func TestIsSafeLinkURL(t *testing.T) {
	safe := []string{
		"https://example.com",
		"http://example.com/path?q=1",
		"  HTTPS://Example.com/Leaderboard  ",
	}
	for _, raw := range safe {
		if !IsSafeLinkURL(raw) {
			t.Errorf("expected %q to be safe", raw)
		}
	}

	unsafe := []string{
		"",
		"javascript:alert(1)",
		"data:text/html,hi",
		"ftp://example.com/file",
		"/relative/path",
		"example.com",
		"http://",
		"https://exa mple.com/%zz",
	}
	for _, raw := range unsafe {
		if IsSafeLinkURL(raw) {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

func TestValidateBlockVariants(t *testing.T) {
	if err := Validate(models.HeadingBlock{Level: 3, Text: "ok"}); err != nil {
		t.Fatalf("expected valid heading, got %v", err)
	}
	if err := Validate(models.HeadingBlock{Level: 7}); err == nil {
		t.Fatalf("expected heading level 7 to fail validation")
	}
	if err := Validate(models.HeadingBlock{Level: 0}); err == nil {
		t.Fatalf("expected heading level 0 to fail validation")
	}
	if err := Validate(models.ListBlock{Items: []string{}}); err != nil {
		t.Fatalf("expected empty but present items to validate, got %v", err)
	}
	if err := Validate(models.ListBlock{}); err == nil {
		t.Fatalf("expected missing items to fail validation")
	}
	if err := Validate(models.ImageBlock{}); err == nil {
		t.Fatalf("expected image without url to fail validation")
	}
}

func TestSanitizeStringStripsMarkup(t *testing.T) {
	if got := SanitizeString("<p>Hello <b>world</b></p>"); got != "Hello world" {
		t.Fatalf("unexpected stripped text: %q", got)
	}
	if got := NormalizeSpaces("  a \n\t b  "); got != "a b" {
		t.Fatalf("unexpected normalised text: %q", got)
	}
}
