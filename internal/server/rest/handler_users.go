package rest

import (
	"net/http"

	"github.com/dmitrijs2005/usermgmt/internal/common"
)

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := s.users.Register(r.Context(), req.toInput())
	if err != nil {
		writeServiceError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	authUser, ok := AuthUserFromContext(r.Context())
	if !ok {
		writeServiceError(r.Context(), w, s.logger, common.ErrorForbidden)
		return
	}

	u, err := s.users.FindByID(r.Context(), authUser.ID)
	if err != nil {
		writeServiceError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) updateMe(w http.ResponseWriter, r *http.Request) {
	authUser, ok := AuthUserFromContext(r.Context())
	if !ok {
		writeServiceError(r.Context(), w, s.logger, common.ErrorForbidden)
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := s.users.UpdateByID(r.Context(), authUser.ID, req.toInput())
	if err != nil {
		writeServiceError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}
