package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createWorkspaceRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Logo     string `json:"logo"`
}

type joinWorkspaceRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func lengthBetween(field, v string, min, max int) error {
	if n := utf8.RuneCountInString(v); n < min || n > max {
		return fmt.Errorf("%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

func validEmail(v string) error {
	if _, err := mail.ParseAddress(v); err != nil {
		return fmt.Errorf("email is invalid")
	}
	return nil
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}
	if err := errors.Join(lengthBetween("name", req.Name, 2, 50), validEmail(req.Email), lengthBetween("password", req.Password, 6, 72)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	user, err := s.db.createUser(req.Name, req.Email, req.Password)
	if errors.Is(err, errEmailTaken) {
		writeError(w, http.StatusConflict, "User with this email already exists", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	s.respondWithToken(w, http.StatusCreated, user, "Registration successful")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}
	if err := errors.Join(validEmail(req.Email), lengthBetween("password", req.Password, 1, 72)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	user, ok := s.db.authenticate(req.Email, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	s.respondWithToken(w, http.StatusOK, user, "Login successful")
}

func (s *Server) respondWithToken(w http.ResponseWriter, code int, user User, message string) {
	token, err := s.issue(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token", err)
		return
	}
	writeSuccess(w, code, AuthResponse{Token: token, User: user}, message)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	c, ok := claimsFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context", nil)
		return
	}
	user, err := s.db.userByEmail(c.Email)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found", err)
		return
	}
	writeSuccess(w, http.StatusOK, user, "Profile retrieved successfully")
}

func (s *Server) createWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context", nil)
		return
	}
	var req createWorkspaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}
	if err := errors.Join(lengthBetween("name", req.Name, 2, 50), lengthBetween("username", req.Username, 2, 50), validURL(req.Logo)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}

	ws, err := s.db.createWorkspace(userID, req.Name, req.Username, req.Logo, s.now())
	if errors.Is(err, errUsernameTaken) {
		writeError(w, http.StatusConflict, "Workspace username already exists", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create workspace", err)
		return
	}
	writeSuccess(w, http.StatusCreated, ws, "Workspace created successfully")
}

// listWorkspaces binds the query parameters by their field names, Page and
// Limit, both required.
func (s *Server) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context", nil)
		return
	}
	q := r.URL.Query()
	page, perr := strconv.Atoi(q.Get("Page"))
	limit, lerr := strconv.Atoi(q.Get("Limit"))
	if perr != nil || lerr != nil || page < 1 || limit < 1 || limit > 100 {
		writeError(w, http.StatusBadRequest, "Invalid request data", errors.New("page >= 1 and 1 <= limit <= 100 are required"))
		return
	}
	writeSuccess(w, http.StatusOK, s.db.joined(userID, (page-1)*limit, limit), "Workspaces fetched successfully")
}

func (s *Server) getWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workspace ID", err)
		return
	}
	ws, err := s.db.workspace(id.String())
	if err != nil {
		writeError(w, http.StatusNotFound, "Workspace not found", err)
		return
	}
	writeSuccess(w, http.StatusOK, ws, "Workspace fetched successfully")
}

func (s *Server) joinWorkspace(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context", nil)
		return
	}
	var req joinWorkspaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err)
		return
	}
	id, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workspace ID", err)
		return
	}

	switch err := s.db.join(userID, id.String(), s.now()); {
	case errors.Is(err, errNoWorkspace):
		writeError(w, http.StatusNotFound, "Workspace not found", err)
	case errors.Is(err, errAlreadyMember):
		writeError(w, http.StatusConflict, "Already a member of this workspace", err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to join workspace", err)
	default:
		writeSuccess(w, http.StatusOK, nil, "Workspace joined successfully")
	}
}

func validURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("logo must be an absolute URL")
	}
	return nil
}
