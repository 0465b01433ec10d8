package rest

import "net/http"

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s.logger.Debug(r.Context(), "login requested", "email", req.Email)

	pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(r.Context(), w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, AccessResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}
