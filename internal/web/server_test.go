package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gemini "google.golang.org/genai"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/avatar"
	"github.com/evcraddock/rentivo/internal/genai"
	"github.com/evcraddock/rentivo/internal/inquiry"
	"github.com/evcraddock/rentivo/internal/property"
	"github.com/evcraddock/rentivo/internal/session"
	"github.com/evcraddock/rentivo/internal/storage"
)

// stubGenerator answers every call with fixed text and a tiny image.
type stubGenerator struct{}

func (stubGenerator) GenerateContent(_ context.Context, _ string, _ []*gemini.Content, _ *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error) {
	content := gemini.NewContentFromParts([]*gemini.Part{
		gemini.NewPartFromText(" generated "),
		gemini.NewPartFromBytes([]byte("img"), "image/png"),
	}, gemini.RoleModel)
	return &gemini.GenerateContentResponse{Candidates: []*gemini.Candidate{{Content: content}}}, nil
}

func testServer(t *testing.T, opts Options) *Server {
	t.Helper()
	a, err := app.New(context.Background(), app.Options{
		Storage:   storage.NewMemory(),
		Assistant: genai.NewAssistant(stubGenerator{}, "", ""),
		Now:       func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return NewServer(a, opts)
}

func apiRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	r := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, code, w.Body.String())
	}
}

func login(t *testing.T, srv *Server, role session.Role) {
	t.Helper()
	w := apiRequest(t, srv, http.MethodPost, "/api/session", map[string]string{"role": string(role)})
	wantStatus(t, w, http.StatusOK)
}

func TestHealth(t *testing.T) {
	srv := testServer(t, Options{})
	w := apiRequest(t, srv, http.MethodGet, "/health", nil)
	wantStatus(t, w, http.StatusOK)
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer(t, Options{})
	w := apiRequest(t, srv, http.MethodGet, "/api/nope", nil)
	wantStatus(t, w, http.StatusNotFound)

	var resp map[string]string
	decodeBody(t, w, &resp)
	if resp["error"] != "not found" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestListProperties(t *testing.T) {
	srv := testServer(t, Options{})

	tests := []struct {
		name    string
		path    string
		wantIDs []string
	}{
		{"all", "/api/properties", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}},
		{"query", "/api/properties?q=saket", []string{"1"}},
		{"state and district", "/api/properties?state=Delhi&district=South+Delhi", []string{"1"}},
		{"state", "/api/properties?state=Maharashtra", []string{"3", "4", "7"}},
		{"no match", "/api/properties?q=atlantis", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, srv, http.MethodGet, tt.path, nil)
			wantStatus(t, w, http.StatusOK)

			var got []property.Property
			decodeBody(t, w, &got)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d listings, want %d", len(got), len(tt.wantIDs))
			}
			for i, p := range got {
				if p.ID != tt.wantIDs[i] {
					t.Errorf("listing %d = %q, want %q", i, p.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestGetProperty(t *testing.T) {
	srv := testServer(t, Options{})

	w := apiRequest(t, srv, http.MethodGet, "/api/properties/3", nil)
	wantStatus(t, w, http.StatusOK)
	var p property.Property
	decodeBody(t, w, &p)
	if p.ID != "3" {
		t.Errorf("id = %q, want 3", p.ID)
	}

	w = apiRequest(t, srv, http.MethodGet, "/api/properties/999", nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestFilters(t *testing.T) {
	srv := testServer(t, Options{})

	w := apiRequest(t, srv, http.MethodPost, "/api/filters", map[string]string{"action": "selectState", "value": "Maharashtra"})
	wantStatus(t, w, http.StatusOK)
	var resp filtersResponse
	decodeBody(t, w, &resp)
	if resp.Filters.State != "Maharashtra" {
		t.Errorf("state = %q", resp.Filters.State)
	}
	if len(resp.Results) != 3 {
		t.Errorf("got %d results, want 3", len(resp.Results))
	}

	// Listing without query parameters follows the stored filters.
	w = apiRequest(t, srv, http.MethodGet, "/api/properties", nil)
	var visible []property.Property
	decodeBody(t, w, &visible)
	if len(visible) != 3 {
		t.Errorf("visible = %d, want 3", len(visible))
	}

	w = apiRequest(t, srv, http.MethodPost, "/api/filters", map[string]string{"action": "reset"})
	wantStatus(t, w, http.StatusOK)
	resp = filtersResponse{}
	decodeBody(t, w, &resp)
	if !resp.Filters.IsZero() || len(resp.Results) != 10 {
		t.Errorf("after reset: filters %+v, %d results", resp.Filters, len(resp.Results))
	}

	w = apiRequest(t, srv, http.MethodPost, "/api/filters", map[string]string{"action": "sort"})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestSelection(t *testing.T) {
	srv := testServer(t, Options{})

	w := apiRequest(t, srv, http.MethodGet, "/api/selection", nil)
	wantStatus(t, w, http.StatusNotFound)

	w = apiRequest(t, srv, http.MethodPost, "/api/selection", map[string]string{"id": "42"})
	wantStatus(t, w, http.StatusNotFound)

	w = apiRequest(t, srv, http.MethodPost, "/api/selection", map[string]string{"id": "2"})
	wantStatus(t, w, http.StatusOK)

	w = apiRequest(t, srv, http.MethodGet, "/api/selection", nil)
	wantStatus(t, w, http.StatusOK)

	w = apiRequest(t, srv, http.MethodDelete, "/api/selection", nil)
	wantStatus(t, w, http.StatusNoContent)

	w = apiRequest(t, srv, http.MethodGet, "/api/selection", nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	srv := testServer(t, Options{})

	w := apiRequest(t, srv, http.MethodGet, "/api/session", nil)
	wantStatus(t, w, http.StatusOK)
	var resp sessionResponse
	decodeBody(t, w, &resp)
	if resp.State != session.Anonymous || resp.User != nil {
		t.Fatalf("initial session = %+v", resp)
	}

	w = apiRequest(t, srv, http.MethodPost, "/api/session", map[string]string{"role": "admin"})
	wantStatus(t, w, http.StatusBadRequest)

	w = apiRequest(t, srv, http.MethodPost, "/api/session", map[string]string{"role": "renter"})
	wantStatus(t, w, http.StatusOK)
	resp = sessionResponse{}
	decodeBody(t, w, &resp)
	if resp.User == nil || resp.User.ID != "r1" {
		t.Fatalf("logged in user = %+v", resp.User)
	}

	name := "Rajesh K."
	w = apiRequest(t, srv, http.MethodPatch, "/api/session/profile", session.Patch{Name: &name})
	wantStatus(t, w, http.StatusOK)
	var u session.User
	decodeBody(t, w, &u)
	if u.Name != name {
		t.Errorf("name = %q, want %q", u.Name, name)
	}

	bad := "next week"
	w = apiRequest(t, srv, http.MethodPatch, "/api/session/profile", session.Patch{MoveInDate: &bad})
	wantStatus(t, w, http.StatusBadRequest)
	var verr map[string]interface{}
	decodeBody(t, w, &verr)
	if _, ok := verr["fields"]; !ok {
		t.Errorf("validation response missing fields: %v", verr)
	}

	w = apiRequest(t, srv, http.MethodDelete, "/api/session", nil)
	wantStatus(t, w, http.StatusNoContent)

	w = apiRequest(t, srv, http.MethodPatch, "/api/session/profile", session.Patch{Name: &name})
	wantStatus(t, w, http.StatusUnauthorized)
}

func TestSetAvatar(t *testing.T) {
	srv := testServer(t, Options{})

	img := image.NewRGBA(image.Rect(0, 0, 60, 30))
	for x := 0; x < 60; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	upload := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/session/avatar", bytes.NewReader(buf.Bytes()))
		r.Header.Set("Content-Type", "image/png")
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)
		return w
	}

	wantStatus(t, upload(), http.StatusUnauthorized)

	login(t, srv, session.Landlord)
	w := upload()
	wantStatus(t, w, http.StatusOK)
	var u session.User
	decodeBody(t, w, &u)
	if !strings.HasPrefix(u.Avatar, "data:image/jpeg;base64,") {
		t.Errorf("avatar = %.40q", u.Avatar)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/session/avatar", strings.NewReader("not an image"))
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	wantStatus(t, w, http.StatusBadRequest)

	r = httptest.NewRequest(http.MethodPost, "/api/session/avatar", bytes.NewReader(make([]byte, avatar.MaxUpload+1)))
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	wantStatus(t, w, http.StatusRequestEntityTooLarge)
}

func TestInquiryFlow(t *testing.T) {
	srv := testServer(t, Options{})
	req := inquiry.Request{Message: "Is it still available?", MoveInDate: "2026-04-01", Occupants: 2}

	w := apiRequest(t, srv, http.MethodPost, "/api/inquiries", req)
	wantStatus(t, w, http.StatusUnauthorized)

	login(t, srv, session.Renter)
	w = apiRequest(t, srv, http.MethodPost, "/api/inquiries", req)
	wantStatus(t, w, http.StatusConflict)

	apiRequest(t, srv, http.MethodPost, "/api/selection", map[string]string{"id": "1"})

	w = apiRequest(t, srv, http.MethodPost, "/api/inquiries", inquiry.Request{Message: "   "})
	wantStatus(t, w, http.StatusBadRequest)

	w = apiRequest(t, srv, http.MethodPost, "/api/inquiries", req)
	wantStatus(t, w, http.StatusCreated)
	var inq inquiry.Inquiry
	decodeBody(t, w, &inq)
	if inq.Status != inquiry.Pending || inq.ReceiverID != "l1" || inq.PropertyID != "1" {
		t.Fatalf("inquiry = %+v", inq)
	}

	w = apiRequest(t, srv, http.MethodGet, "/api/inquiries?box=sent", nil)
	wantStatus(t, w, http.StatusOK)
	var sent []inquiry.Inquiry
	decodeBody(t, w, &sent)
	if len(sent) != 1 {
		t.Errorf("sent = %d, want 1", len(sent))
	}

	w = apiRequest(t, srv, http.MethodGet, "/api/inquiries?box=spam", nil)
	wantStatus(t, w, http.StatusBadRequest)

	// The renter cannot decide their own inquiry.
	path := "/api/inquiries/" + inq.ID + "/status"
	w = apiRequest(t, srv, http.MethodPost, path, map[string]string{"status": "ACCEPTED"})
	wantStatus(t, w, http.StatusForbidden)

	login(t, srv, session.Landlord)
	w = apiRequest(t, srv, http.MethodPost, path, map[string]string{"status": "maybe"})
	wantStatus(t, w, http.StatusBadRequest)

	w = apiRequest(t, srv, http.MethodPost, path, map[string]string{"status": "accepted"})
	wantStatus(t, w, http.StatusOK)
	decodeBody(t, w, &inq)
	if inq.Status != inquiry.Accepted {
		t.Errorf("status = %q, want ACCEPTED", inq.Status)
	}

	w = apiRequest(t, srv, http.MethodPost, path, map[string]string{"status": "REJECTED"})
	wantStatus(t, w, http.StatusConflict)

	w = apiRequest(t, srv, http.MethodPost, "/api/inquiries/missing/status", map[string]string{"status": "REJECTED"})
	wantStatus(t, w, http.StatusNotFound)

	w = apiRequest(t, srv, http.MethodGet, "/api/properties/1", nil)
	var p property.Property
	decodeBody(t, w, &p)
	if p.InterestedCount == 0 {
		t.Error("expected the inquiry to count as a lead")
	}
}

func TestCreatePropertyAndDashboard(t *testing.T) {
	srv := testServer(t, Options{})
	draft := property.NewDraft()
	draft.Title = "Garden flat"
	draft.Rent = 30000
	draft.State = "Delhi"
	draft.District = "South Delhi"
	draft.City = "New Delhi"
	draft.Facilities = []string{"WiFi"}

	w := apiRequest(t, srv, http.MethodPost, "/api/properties", draft)
	wantStatus(t, w, http.StatusUnauthorized)

	login(t, srv, session.Renter)
	w = apiRequest(t, srv, http.MethodPost, "/api/properties", draft)
	wantStatus(t, w, http.StatusForbidden)
	w = apiRequest(t, srv, http.MethodGet, "/api/dashboard", nil)
	wantStatus(t, w, http.StatusForbidden)

	login(t, srv, session.Landlord)
	bad := draft
	bad.District = "Pune"
	w = apiRequest(t, srv, http.MethodPost, "/api/properties", bad)
	wantStatus(t, w, http.StatusBadRequest)

	w = apiRequest(t, srv, http.MethodPost, "/api/properties", draft)
	wantStatus(t, w, http.StatusCreated)
	var p property.Property
	decodeBody(t, w, &p)
	if p.LandlordID != "l1" || p.Title != "Garden flat" {
		t.Fatalf("created = %+v", p)
	}

	w = apiRequest(t, srv, http.MethodGet, "/api/properties", nil)
	var all []property.Property
	decodeBody(t, w, &all)
	if len(all) != 11 || all[0].ID != p.ID {
		t.Errorf("new listing should be first of 11, got %d listings", len(all))
	}

	w = apiRequest(t, srv, http.MethodGet, "/api/dashboard", nil)
	wantStatus(t, w, http.StatusOK)
	var d app.Dashboard
	decodeBody(t, w, &d)
	if d.Landlord.ID != "l1" || len(d.Listings) == 0 {
		t.Errorf("dashboard = %+v", d)
	}
}

func TestLocations(t *testing.T) {
	srv := testServer(t, Options{})
	w := apiRequest(t, srv, http.MethodGet, "/api/locations", nil)
	wantStatus(t, w, http.StatusOK)

	var loc app.Locations
	decodeBody(t, w, &loc)
	if len(loc.States) == 0 || len(loc.Districts["Delhi"]) == 0 {
		t.Errorf("locations = %+v", loc)
	}
}

func TestAIEndpoints(t *testing.T) {
	srv := testServer(t, Options{})

	w := apiRequest(t, srv, http.MethodPost, "/api/ai/description", map[string]string{"propertyId": "1"})
	wantStatus(t, w, http.StatusOK)
	var desc map[string]string
	decodeBody(t, w, &desc)
	if desc["description"] != "generated" {
		t.Errorf("description = %q", desc["description"])
	}

	w = apiRequest(t, srv, http.MethodPost, "/api/ai/description", map[string]interface{}{"draft": map[string]string{"title": "Flat"}})
	wantStatus(t, w, http.StatusBadRequest)

	w = apiRequest(t, srv, http.MethodPost, "/api/ai/description", map[string]string{})
	wantStatus(t, w, http.StatusBadRequest)

	w = apiRequest(t, srv, http.MethodPost, "/api/ai/analyze", map[string]string{"data": "cmVjZWlwdA==", "mimeType": "image/png"})
	wantStatus(t, w, http.StatusOK)
	var summary map[string]string
	decodeBody(t, w, &summary)
	if summary["summary"] == "" {
		t.Error("expected a summary")
	}

	w = apiRequest(t, srv, http.MethodPost, "/api/ai/analyze", map[string]string{"data": "%%%"})
	wantStatus(t, w, http.StatusBadRequest)

	w = apiRequest(t, srv, http.MethodPost, "/api/ai/banner", map[string]string{"prompt": "sea view", "aspectRatio": "1:1"})
	wantStatus(t, w, http.StatusOK)
	var banner bannerResponse
	decodeBody(t, w, &banner)
	if banner.Image == nil || !strings.HasPrefix(*banner.Image, "data:image/png;base64,") {
		t.Errorf("banner = %v", banner.Image)
	}

	w = apiRequest(t, srv, http.MethodPost, "/api/ai/banner", map[string]string{"prompt": "sea view", "aspectRatio": "2:1"})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestAIRateLimit(t *testing.T) {
	srv := testServer(t, Options{RPS: 0.001, Burst: 2})
	body := map[string]string{"propertyId": "1"}

	for i := 0; i < 2; i++ {
		w := apiRequest(t, srv, http.MethodPost, "/api/ai/description", body)
		wantStatus(t, w, http.StatusOK)
	}
	w := apiRequest(t, srv, http.MethodPost, "/api/ai/description", body)
	wantStatus(t, w, http.StatusTooManyRequests)

	// Other routes are not limited.
	w = apiRequest(t, srv, http.MethodGet, "/api/properties/1", nil)
	wantStatus(t, w, http.StatusOK)
}

func TestCORS(t *testing.T) {
	srv := testServer(t, Options{AllowedOrigins: []string{"http://localhost:5173"}})

	r := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	r.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow origin = %q, want empty", got)
	}
}
