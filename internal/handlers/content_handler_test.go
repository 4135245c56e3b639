package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fairway-content-backend/internal/service"
)

func newContentRouter(opts service.ContentServiceOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewContentHandler(service.NewContentService(nil, opts))

	router := gin.New()
	content := router.Group("/api/v1/content")
	content.POST("/render", handler.Render)
	content.POST("/sanitize", handler.Sanitize)
	content.POST("/read-time", handler.ReadTime)
	content.GET("/block-types", handler.BlockTypes)
	return router
}

func performJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRenderEndpoint(t *testing.T) {
	router := newContentRouter(service.ContentServiceOptions{})
	body := `{"blocks":[
		{"type":"heading","id":1,"level":1,"text":"Title"},
		{"type":"paragraph","html":"<p>Hello <script>evil()</script>world</p>"},
		{"type":"table","rows":3},
		{"type":"heading","level":"two","text":"Broken"}
	]}`

	rec := performJSON(router, http.MethodPost, "/api/v1/content/render", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Document service.Document `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	doc := resp.Document
	if len(doc.Units) != 2 || doc.Skipped != 2 {
		t.Fatalf("expected 2 units and 2 skipped, got %d and %d", len(doc.Units), doc.Skipped)
	}
	if doc.Units[0].Key != "1" {
		t.Fatalf("expected numeric id to become the unit key, got %q", doc.Units[0].Key)
	}
	if strings.Contains(string(doc.HTML), "evil") {
		t.Fatalf("script leaked into document html: %s", doc.HTML)
	}
	if doc.ReadTime != "1 min read" {
		t.Fatalf("unexpected read time: %q", doc.ReadTime)
	}
}

func TestRenderEndpointRejectsBadBodies(t *testing.T) {
	router := newContentRouter(service.ContentServiceOptions{MaxBlocks: 1})

	for name, body := range map[string]string{
		"not json":       `{"blocks":`,
		"missing blocks": `{}`,
		"not an array":   `{"blocks":{"type":"divider"}}`,
	} {
		rec := performJSON(router, http.MethodPost, "/api/v1/content/render", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}

	rec := performJSON(router, http.MethodPost, "/api/v1/content/render", `{"blocks":[{"type":"divider"},{"type":"divider"}]}`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversized document, got %d", rec.Code)
	}
}

func TestSanitizeEndpoint(t *testing.T) {
	router := newContentRouter(service.ContentServiceOptions{})

	rec := performJSON(router, http.MethodPost, "/api/v1/content/sanitize", `{"html":"<a href=\"javascript:x()\" onclick=\"y()\">go</a>"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["html"] != `<a href="">go</a>` {
		t.Fatalf("unexpected sanitized html: %q", resp["html"])
	}

	if rec := performJSON(router, http.MethodPost, "/api/v1/content/sanitize", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when html is missing, got %d", rec.Code)
	}
	if rec := performJSON(router, http.MethodPost, "/api/v1/content/sanitize", `{"html":""}`); rec.Code != http.StatusOK {
		t.Fatalf("expected empty html to be accepted, got %d", rec.Code)
	}
}

func TestReadTimeEndpoint(t *testing.T) {
	router := newContentRouter(service.ContentServiceOptions{})

	rec := performJSON(router, http.MethodPost, "/api/v1/content/read-time", `{"text":"`+strings.Repeat("eagle ", 400)+`"}`)
	var resp struct {
		Label   string `json:"label"`
		Minutes int    `json:"minutes"`
		Words   int    `json:"words"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Label != "2 min read" || resp.Words != 400 {
		t.Fatalf("unexpected estimate: %+v", resp)
	}

	rec = performJSON(router, http.MethodPost, "/api/v1/content/read-time", `{"text":"ignored","blocks":[{"type":"quote","text":"Play it","caption":"as it lies"}]}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Words != 5 || resp.Label != "1 min read" {
		t.Fatalf("expected blocks to be estimated, got %+v", resp)
	}
}

func TestBlockTypesEndpoint(t *testing.T) {
	router := newContentRouter(service.ContentServiceOptions{})
	rec := performJSON(router, http.MethodGet, "/api/v1/content/block-types", "")

	var resp struct {
		BlockTypes  []string `json:"block_types"`
		AllowedTags []string `json:"allowed_tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if strings.Join(resp.BlockTypes, ",") != "code,divider,embed,heading,image,list,paragraph,quote" {
		t.Fatalf("unexpected block types: %v", resp.BlockTypes)
	}
	if len(resp.AllowedTags) != 20 || resp.AllowedTags[0] != "a" {
		t.Fatalf("unexpected allowed tags: %v", resp.AllowedTags)
	}
}

func TestNilHandlerReportsUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/types", NewContentHandler(nil).BlockTypes)

	rec := performJSON(router, http.MethodGet, "/types", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
