package web

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/evcraddock/rentivo/internal/avatar"
	"github.com/evcraddock/rentivo/internal/genai"
	"github.com/evcraddock/rentivo/internal/inquiry"
	"github.com/evcraddock/rentivo/internal/property"
	"github.com/evcraddock/rentivo/internal/session"
)

// Listings

func (s *Server) apiListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var results []property.Property
	if q.Has("q") || q.Has("state") || q.Has("district") {
		results = s.app.Search(property.Criteria{
			Query:    q.Get("q"),
			State:    q.Get("state"),
			District: q.Get("district"),
		})
	} else {
		results = s.app.Visible()
	}
	apiJSON(w, results, http.StatusOK)
}

func (s *Server) apiGetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.Property(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) apiCreateProperty(w http.ResponseWriter, r *http.Request) {
	d := property.NewDraft()
	if !decodeJSON(w, r, &d) {
		return
	}
	p, err := s.app.CreateListing(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, p, http.StatusCreated)
}

func (s *Server) apiLocations(w http.ResponseWriter, _ *http.Request) {
	apiJSON(w, s.app.Locations(), http.StatusOK)
}

// Filters and selection

type filtersResponse struct {
	Filters property.FilterState `json:"filters"`
	Results []property.Property  `json:"results"`
}

func (s *Server) writeFilters(w http.ResponseWriter, fs property.FilterState) {
	apiJSON(w, filtersResponse{Filters: fs, Results: s.app.Visible()}, http.StatusOK)
}

func (s *Server) apiGetFilters(w http.ResponseWriter, _ *http.Request) {
	s.writeFilters(w, s.app.Filters())
}

type filterActionRequest struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

func (s *Server) apiDispatchFilter(w http.ResponseWriter, r *http.Request) {
	var req filterActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var action property.FilterAction
	switch req.Action {
	case "setQuery":
		action = property.SetQuery{Query: req.Value}
	case "selectState":
		action = property.SelectState{State: req.Value}
	case "selectDistrict":
		action = property.SelectDistrict{District: req.Value}
	case "reset":
		action = property.ResetFilters{}
	default:
		apiError(w, "action must be one of setQuery, selectState, selectDistrict, reset", http.StatusBadRequest)
		return
	}
	s.writeFilters(w, s.app.Dispatch(action))
}

func (s *Server) apiGetSelection(w http.ResponseWriter, _ *http.Request) {
	p := s.app.Selected()
	if p == nil {
		apiError(w, "no property selected", http.StatusNotFound)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) apiSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := s.app.Select(req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) apiClearSelection(w http.ResponseWriter, _ *http.Request) {
	s.app.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

// Session

type sessionResponse struct {
	State session.State `json:"state"`
	User  *session.User `json:"user"`
}

func (s *Server) apiGetSession(w http.ResponseWriter, _ *http.Request) {
	apiJSON(w, sessionResponse{State: s.app.SessionState(), User: s.app.CurrentUser()}, http.StatusOK)
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	role, err := session.ParseRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := s.app.Login(r.Context(), role)
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, sessionResponse{State: session.Authenticated, User: &u}, http.StatusOK)
}

func (s *Server) apiLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p session.Patch
	if !decodeJSON(w, r, &p) {
		return
	}
	u, err := s.app.UpdateProfile(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, u, http.StatusOK)
}

func (s *Server) apiSetAvatar(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, avatar.MaxUpload+1)
	u, err := s.app.SetAvatar(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, u, http.StatusOK)
}

// Inquiries

func (s *Server) apiListInquiries(w http.ResponseWriter, r *http.Request) {
	var (
		items []inquiry.Inquiry
		err   error
	)
	switch box := r.URL.Query().Get("box"); box {
	case "", "all":
		items = s.app.Inquiries()
	case "sent":
		items, err = s.app.Outbox()
	case "received":
		items, err = s.app.Inbox()
	default:
		apiError(w, "box must be all, sent or received", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, items, http.StatusOK)
}

func (s *Server) apiSubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiry.Request
	if !decodeJSON(w, r, &req) {
		return
	}
	inq, err := s.app.SubmitInquiry(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, inq, http.StatusCreated)
}

func (s *Server) apiDecideInquiry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	status, ok := inquiry.ParseStatus(req.Status)
	if !ok {
		apiError(w, "status must be ACCEPTED or REJECTED", http.StatusBadRequest)
		return
	}
	inq, err := s.app.DecideInquiry(r.Context(), mux.Vars(r)["id"], status)
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, inq, http.StatusOK)
}

func (s *Server) apiDashboard(w http.ResponseWriter, _ *http.Request) {
	d, err := s.app.Dashboard()
	if err != nil {
		writeError(w, err)
		return
	}
	apiJSON(w, d, http.StatusOK)
}

// AI

type describeRequest struct {
	PropertyID string          `json:"propertyId"`
	Draft      *property.Draft `json:"draft"`
}

func (s *Server) apiDescribe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var text string
	switch {
	case req.PropertyID != "":
		var err error
		text, err = s.app.DescribeProperty(r.Context(), req.PropertyID)
		if err != nil {
			writeError(w, err)
			return
		}
	case req.Draft != nil:
		if strings.TrimSpace(req.Draft.Title) == "" || strings.TrimSpace(req.Draft.City) == "" {
			writeError(w, property.ErrIncompleteDraft)
			return
		}
		text = s.app.DescribeDraft(r.Context(), *req.Draft)
	default:
		apiError(w, "propertyId or draft is required", http.StatusBadRequest)
		return
	}
	apiJSON(w, map[string]string{"description": text}, http.StatusOK)
}

type analyzeRequest struct {
	// Data is the base64 encoded document.
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

func (s *Server) apiAnalyze(w http.ResponseWriter, r *http.Request) {
	var (
		data []byte
		mime string
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req analyzeRequest
		if !decodeJSONLimit(w, r, &req, maxUploadBytes*4/3+1024) {
			return
		}
		raw, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			apiError(w, "data must be base64", http.StatusBadRequest)
			return
		}
		data, mime = raw, req.MimeType
	} else {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
		if err != nil {
			apiError(w, "reading document", http.StatusBadRequest)
			return
		}
		data, mime = raw, r.Header.Get("Content-Type")
	}
	if mime == "" {
		mime = "application/pdf"
	}

	summary := s.app.Assistant().AnalyzeDocument(r.Context(), data, mime)
	apiJSON(w, map[string]string{"summary": summary}, http.StatusOK)
}

type bannerRequest struct {
	Prompt      string            `json:"prompt"`
	AspectRatio genai.AspectRatio `json:"aspectRatio"`
}

type bannerResponse struct {
	Image *string `json:"image"`
}

func (s *Server) apiBanner(w http.ResponseWriter, r *http.Request) {
	req := bannerRequest{AspectRatio: genai.Wide}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		apiError(w, "prompt is required", http.StatusBadRequest)
		return
	}
	if !req.AspectRatio.IsValid() {
		apiError(w, "aspectRatio must be 1:1, 4:3, 16:9 or 9:16", http.StatusBadRequest)
		return
	}

	var resp bannerResponse
	if img, ok := s.app.Assistant().GenerateBanner(r.Context(), req.Prompt, req.AspectRatio); ok {
		resp.Image = &img
	}
	apiJSON(w, resp, http.StatusOK)
}
