package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorResponder writes error bodies in one content type. Routes pick the responder that
// matches what their clients expect.
type errorResponder struct {
	contentType string
}

var (
	jsonErrors = errorResponder{contentType: "application/json"}
	textErrors = errorResponder{contentType: "text/plain; charset=utf-8"}
)

func (e errorResponder) respond(w http.ResponseWriter, status int, message string) {
	if e.contentType == jsonErrors.contentType {
		writeJSON(w, status, map[string]string{"error": message})
		return
	}
	w.Header().Set("Content-Type", e.contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondFile sends body as a download named filename.
func (s *Server) respondFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("write response body", zap.Error(err))
	}
}
