package handler

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/tds-renamer/dto"
	"github.com/Aashish23092/tds-renamer/service"
)

type RenameHandler struct {
	renameService *service.RenameService
	archiveName   string
	defaultMode   dto.OutputMode
	logger        *slog.Logger
}

func NewRenameHandler(renameService *service.RenameService, archiveName string, defaultMode dto.OutputMode, logger *slog.Logger) *RenameHandler {
	return &RenameHandler{
		renameService: renameService,
		archiveName:   archiveName,
		defaultMode:   defaultMode,
		logger:        logger,
	}
}

// Rename handles POST /api/v1/rename
func (h *RenameHandler) Rename(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		sendError(c, h.logger, "Failed to parse multipart form", dto.WrapError(dto.ErrInvalidInput, "parse form", err))
		return
	}

	mode := dto.OutputMode(strings.TrimSpace(c.PostForm("mode")))
	if mode == "" {
		mode = h.defaultMode
	}

	request := &dto.RenameRequest{
		Files: form.File["files[]"],
		Mode:  mode,
	}
	if mappings := form.File["mapping"]; len(mappings) > 0 {
		request.Mapping = mappings[0]
	}

	if err := request.Validate(); err != nil {
		sendError(c, h.logger, "Invalid rename request", err)
		return
	}

	mappingData, err := readUpload(request.Mapping)
	if err != nil {
		sendError(c, h.logger, "Failed to read mapping file", err)
		return
	}

	files := make([]dto.InputFile, 0, len(request.Files))
	for _, fh := range request.Files {
		content, err := readUpload(fh)
		if err != nil {
			sendError(c, h.logger, "Failed to read uploaded file", err)
			return
		}
		files = append(files, dto.InputFile{Name: filepath.Base(fh.Filename), Content: content})
	}

	h.logger.Info("rename request received",
		"request_id", requestIDFrom(c),
		"mapping", request.Mapping.Filename,
		"files", len(files),
		"mode", request.Mode,
	)

	result, err := h.renameService.Process(c.Request.Context(), request.Mapping.Filename, mappingData, files, request.Mode)
	if err != nil {
		sendError(c, h.logger, "Rename batch failed", err)
		return
	}

	if request.Mode == dto.OutputModeArchive {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.archiveName))
		c.Header("X-Total-Count", strconv.Itoa(result.Response.Summary.Total))
		c.Header("X-Renamed-Count", strconv.Itoa(result.Response.Summary.Renamed))
		c.Header("X-Unmatched-Count", strconv.Itoa(result.Response.Summary.Unmatched))
		c.Data(http.StatusOK, "application/zip", result.Archive)
		return
	}

	c.JSON(http.StatusOK, result.Response)
}

// PreviewMapping handles POST /api/v1/mapping/preview
func (h *RenameHandler) PreviewMapping(c *gin.Context) {
	fh, err := c.FormFile("mapping")
	if err != nil {
		sendError(c, h.logger, "Mapping file is required", dto.WrapError(dto.ErrInvalidInput, "read form", err))
		return
	}

	data, err := readUpload(fh)
	if err != nil {
		sendError(c, h.logger, "Failed to read mapping file", err)
		return
	}

	preview, err := h.renameService.Preview(fh.Filename, data)
	if err != nil {
		sendError(c, h.logger, "Mapping preview failed", err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, dto.WrapError(dto.ErrInvalidInput, "open "+fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, dto.WrapError(dto.ErrInvalidInput, "read "+fh.Filename, err)
	}
	return data, nil
}
