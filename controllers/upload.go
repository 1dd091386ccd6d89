package controllers

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"go-retrofit/middleware"
	"go-retrofit/utils"
)

// maxUploadSize caps the multipart body of an image upload.
const maxUploadSize = 10 << 20

// UploadController stores vehicle and service images
type UploadController struct {
	Dir       string
	URLPrefix string
}

// NewUploadController saves files to dir and serves them under urlPrefix
func NewUploadController(dir, urlPrefix string) *UploadController {
	return &UploadController{Dir: dir, URLPrefix: urlPrefix}
}

// UploadImage resizes the multipart "file" and returns its public URL (Admin only)
func (uc *UploadController) UploadImage(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFrom(r.Context())

	// Parse multipart form with a max memory of 10MB
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to retrieve file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	optimized, err := utils.OptimizeImage(data, utils.MaxImageDimension)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "File is not a supported image")
		return
	}

	if err := os.MkdirAll(uc.Dir, os.ModePerm); err != nil {
		log.WithError(err).Error("failed to create upload directory")
		writeMessage(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}
	filename := uuid.New().String() + ".jpg"
	if err := os.WriteFile(filepath.Join(uc.Dir, filename), optimized, 0o644); err != nil {
		log.WithError(err).Error("failed to save upload")
		writeMessage(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	log.WithField("file", filename).WithField("bytes", len(optimized)).Info("image uploaded")
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "url": path.Join(uc.URLPrefix, filename)})
}
