package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/getcareer/portal/internal/server/models"
	"github.com/getcareer/portal/internal/server/session"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type navRequest struct {
	Page string `json:"page"`
}

type stateResponse struct {
	View    session.ViewSelector `json:"view"`
	Role    models.Role          `json:"role,omitempty"`
	Page    session.Page         `json:"page,omitempty"`
	Message string               `json:"message,omitempty"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	st := s.sessionState(r)
	st, err := s.flow.SubmitLogin(r.Context(), st, req.Username, req.Password)
	if err != nil {
		respondWithError(w, statusFromError(err), err.Error())
		return
	}

	if !s.writeSession(w, r, st) {
		return
	}
	respondWithJSON(w, http.StatusOK, stateResponse{View: session.Route(st), Role: st.Role})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	st := s.sessionState(r)
	st, err := s.flow.SubmitRegister(r.Context(), st, req.Username, req.Password, req.Confirm)
	if err != nil {
		respondWithError(w, statusFromError(err), err.Error())
		return
	}

	if !s.writeSession(w, r, st) {
		return
	}
	respondWithJSON(w, http.StatusCreated, stateResponse{View: session.Route(st), Message: "account created, please log in"})
}

func (s *Server) toggleMode(w http.ResponseWriter, r *http.Request) {
	st := s.sessionState(r)
	if st.Authenticated {
		// Toggling forms is meaningless once logged in.
		respondWithJSON(w, http.StatusOK, stateResponse{View: session.Route(st)})
		return
	}

	st = s.flow.ToggleMode(st)
	if !s.writeSession(w, r, st) {
		return
	}
	respondWithJSON(w, http.StatusOK, stateResponse{View: session.Route(st)})
}

func (s *Server) selectPage(w http.ResponseWriter, r *http.Request) {
	var req navRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	st := s.sessionState(r)
	if !st.Authenticated || st.Role != models.RoleSeeker {
		respondWithError(w, http.StatusForbidden, "navigation requires a seeker session")
		return
	}

	page := session.Page(req.Page)
	switch page {
	case session.PageHome, session.PageSearchJobs, session.PageProfile:
	default:
		respondWithError(w, http.StatusBadRequest, "unknown page")
		return
	}

	st = session.SelectPage(st, page)
	if !s.writeSession(w, r, st) {
		return
	}
	respondWithJSON(w, http.StatusOK, stateResponse{View: session.Route(st), Page: st.CurrentPage})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	st := session.Logout(s.sessionState(r))
	if !s.writeSession(w, r, st) {
		return
	}
	respondWithJSON(w, http.StatusOK, stateResponse{View: session.Route(st), Message: "logged out"})
}

func (s *Server) currentView(w http.ResponseWriter, r *http.Request) {
	st := s.sessionState(r)
	respondWithJSON(w, http.StatusOK, stateResponse{View: session.Route(st), Role: st.Role})
}

type jobsResponse struct {
	Listings []jobsListing `json:"listings"`
	Total    int           `json:"total"`
}

// jobsListing mirrors jobs.Listing; redeclared here to keep the wire shape
// independent from the generator package.
type jobsListing struct {
	Position string `json:"position"`
	Company  string `json:"company"`
	Salary   string `json:"salary"`
	Location string `json:"location"`
}

func (s *Server) searchJobs(w http.ResponseWriter, r *http.Request) {
	st := s.sessionState(r)
	if !st.Authenticated || st.Role != models.RoleSeeker {
		respondWithError(w, http.StatusForbidden, "job search requires a seeker session")
		return
	}

	q := r.URL.Query()
	found := s.jobs.Search(q.Get("keyword"), q.Get("position"), q.Get("location"))

	resp := jobsResponse{Listings: make([]jobsListing, 0, len(found)), Total: len(found)}
	for _, l := range found {
		resp.Listings = append(resp.Listings, jobsListing(l))
	}
	respondWithJSON(w, http.StatusOK, resp)
}

type cvResponse struct {
	StoredName string `json:"stored_name"`
}

func (s *Server) uploadCV(w http.ResponseWriter, r *http.Request) {
	st := s.sessionState(r)
	if !st.Authenticated || st.Role != models.RoleSeeker {
		respondWithError(w, http.StatusForbidden, "CV upload requires a seeker session")
		return
	}

	file, header, err := r.FormFile("cv")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "missing cv file")
		return
	}
	defer file.Close()

	storedName, err := s.cvs.Save(r.Context(), st.Username, header.Filename, file)
	if err != nil {
		s.logger.Error(r.Context(), "storing CV", "user", st.Username, "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, "could not store CV")
		return
	}

	st = session.WithCV(st, storedName)
	if !s.writeSession(w, r, st) {
		return
	}
	respondWithJSON(w, http.StatusOK, cvResponse{StoredName: storedName})
}

type adminUsersResponse struct {
	Users  []adminUserRow   `json:"users"`
	Total  int64            `json:"total"`
	ByRole map[string]int64 `json:"by_role"`
}

type adminUserRow struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	JoinDate string `json:"join_date"`
}

func (s *Server) adminUsers(w http.ResponseWriter, r *http.Request) {
	st := s.sessionState(r)
	if !st.Authenticated || st.Role != models.RoleAdmin {
		respondWithError(w, http.StatusForbidden, "admin role required")
		return
	}

	listing, err := s.users.UserListing(r.Context())
	if err != nil {
		respondWithError(w, statusFromError(err), err.Error())
		return
	}

	resp := adminUsersResponse{
		Users:  make([]adminUserRow, 0, len(listing.Users)),
		Total:  listing.Total,
		ByRole: make(map[string]int64, len(listing.ByRole)),
	}
	for _, u := range listing.Users {
		resp.Users = append(resp.Users, adminUserRow{
			Username: u.Username,
			Role:     string(u.Role),
			JoinDate: u.JoinDate,
		})
	}
	for role, n := range listing.ByRole {
		resp.ByRole[string(role)] = n
	}
	respondWithJSON(w, http.StatusOK, resp)
}
