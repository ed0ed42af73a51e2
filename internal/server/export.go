package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hyperjump/inspekt/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	errs := textErrors
	var req models.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		errs.respond(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errs.respond(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("export request", zap.String("type", string(req.Type)), zap.Int("data_bytes", len(req.Data)))
	file, err := s.exporter.Export(req.Type, req.Data)
	if err != nil {
		s.logger.Error("export failed", zap.String("type", string(req.Type)), zap.Error(err))
		errs.respond(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondFile(w, file.ContentType, file.Filename, file.Body)
}
