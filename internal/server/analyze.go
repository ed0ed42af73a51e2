package server

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/hyperjump/inspekt/internal/analysis"
	"github.com/hyperjump/inspekt/internal/models"
	"go.uber.org/zap"
)

// Multipart field names of the analysis form.
const (
	fieldFile = "file"
	fieldText = "text"
)

var (
	errUnexpectedFile = errors.New("unexpected file field")
	errTooManyFiles   = errors.New("only one file may be uploaded")
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	errs := jsonErrors
	if err := r.ParseMultipartForm(s.config.Upload.MaxMemoryBytes); err != nil {
		s.logger.Error("parse upload failed", zap.Error(err))
		errs.respond(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.Warn("remove multipart spool files failed", zap.Error(err))
		}
	}()

	text := formValue(r.MultipartForm, fieldText)
	doc, err := s.receiveUpload(r.MultipartForm)
	if err != nil {
		s.logger.Error("receive upload failed", zap.Error(err))
		errs.respond(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc != nil {
		extracted, err := s.extractor.Extract(doc)
		if err != nil {
			s.logger.Error("text extraction failed",
				zap.String("filename", doc.Filename),
				zap.String("media_type", doc.MediaType),
				zap.Error(err))
			errs.respond(w, http.StatusInternalServerError, err.Error())
			return
		}
		text = analysis.CombineText(text, extracted)
	}

	result, err := s.analyzer.Analyze(r.Context(), text)
	if errors.Is(err, models.ErrNoText) {
		errs.respond(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("analysis failed", zap.Error(err))
		errs.respond(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// receiveUpload returns the single uploaded file, or nil when the form has none.
// The file passes through a temporary file that is removed before this returns.
func (s *Server) receiveUpload(form *multipart.Form) (*models.UploadedDocument, error) {
	for field := range form.File {
		if field != fieldFile {
			return nil, fmt.Errorf("%w %q", errUnexpectedFile, field)
		}
	}
	headers := form.File[fieldFile]
	switch len(headers) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, errTooManyFiles
	}
	fh := headers[0]

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mediaType := declaredMediaType(fh)
	tmp, err := s.uploads.Save(src, fh.Filename, mediaType)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := tmp.Remove(); err != nil {
			s.logger.Warn("temp file cleanup failed", zap.String("path", tmp.Path), zap.Error(err))
		}
	}()

	content, err := tmp.ReadAll()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("received upload",
		zap.String("filename", fh.Filename),
		zap.String("media_type", mediaType),
		zap.Int64("size", tmp.Size))
	return &models.UploadedDocument{
		Filename:  fh.Filename,
		MediaType: mediaType,
		Content:   content,
	}, nil
}

// declaredMediaType returns the part's Content-Type without parameters.
func declaredMediaType(fh *multipart.FileHeader) string {
	raw := fh.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return raw
	}
	return mediaType
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
