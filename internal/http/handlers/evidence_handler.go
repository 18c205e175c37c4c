package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/rmagbanua/barangay-backend/internal/dto"
	"github.com/rmagbanua/barangay-backend/internal/http/handlers/common"
	"github.com/rmagbanua/barangay-backend/internal/storage"
)

// Evidence files are stored by reference; only images and PDFs are accepted.
var allowedEvidenceMimes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

type EvidenceHandler struct {
	storage *storage.EvidenceStorage
}

func NewEvidenceHandler(s *storage.EvidenceStorage) *EvidenceHandler {
	return &EvidenceHandler{storage: s}
}

// Upload POST /api/evidence
func (h *EvidenceHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "field file is required")
		return
	}

	if file.Size == 0 {
		common.RespondBadRequest(c, "file cannot be empty")
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Failure("failed to open uploaded file"))
		return
	}
	defer src.Close()

	// Sniff the real type from the magic bytes, not the file name.
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		common.RespondBadRequest(c, "failed to read file")
		return
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		common.RespondBadRequest(c, "could not determine file type")
		return
	}

	mime := kind.MIME.Value
	if !allowedEvidenceMimes[mime] {
		common.RespondBadRequest(c, "unsupported file type, only images and PDF are allowed")
		return
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			c.JSON(http.StatusInternalServerError, dto.Failure("failed to rewind uploaded file"))
			return
		}
	}

	relativePath, size, err := h.storage.Save(c.Request.Context(), file.Filename, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Failure(err.Error()))
		return
	}

	common.RespondSuccess(c, http.StatusCreated, dto.EvidenceUploadResponse{
		Path: relativePath,
		Mime: mime,
		Size: size,
	})
}
