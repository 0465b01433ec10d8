package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.FindAll(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, s.logger, err)
		return
	}

	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) updateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug(r.Context(), "updating user", "user_id", id)

	var req AdminUpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := s.users.UpdateByID(r.Context(), id, req.toInput())
	if err != nil {
		writeServiceError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug(r.Context(), "deleting user", "user_id", id)

	u, err := s.users.DeleteByID(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}
