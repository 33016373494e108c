package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"zedorolo/internal/infrastructure/storage"
	"zedorolo/pkg/errors"
	"zedorolo/pkg/logger"
	"zedorolo/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
	maxFileSize   int64
}

var fileHandler *FileHandler

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
		maxFileSize:   5 * 1024 * 1024,
	}
}

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = NewFileHandler(storageClient)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

// Vehicle photos land in a public folder; KYC documents are always private
// and only ever leave storage as signed URLs.
var uploadFolders = map[string]bool{
	"vehicles": true, // public
	"avatars":  true, // public
	"kyc":      false,
}

func isAllowedFileType(fileType string) bool {
	switch fileType {
	case "image/jpeg", "image/png", "image/webp", "application/pdf":
		return true
	}
	return false
}

func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	fileType := file.Header.Get("Content-Type")
	if !isAllowedFileType(fileType) {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	folder := strings.ToLower(c.FormValue("folder"))
	isPublic, known := uploadFolders[folder]
	if !known {
		return response.Error(c, errors.BadRequest("Folder must be vehicles, avatars or kyc", nil))
	}

	if folder == "kyc" && fileType != "application/pdf" && !strings.HasPrefix(fileType, "image/") {
		return response.Error(c, errors.BadRequest("KYC documents must be images or PDF", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	userID := c.Get("uid").(string)
	logger.Debug("Uploading %s file for user %s into %s", fileType, userID, folder)

	result, err := h.storageClient.UploadFile(c.Request().Context(), src, fileType, folder+"/"+userID, isPublic)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to store file", err))
	}

	return response.Created(c, map[string]interface{}{
		"url":    result,
		"public": isPublic,
	})
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	var req struct {
		URL string `json:"url" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	// Only the uploader's own objects can be removed; the object path carries
	// the owner uid.
	userID := c.Get("uid").(string)
	if !strings.Contains(req.URL, "/"+userID+"/") {
		return response.Error(c, errors.Forbidden("You can only delete your own files", nil))
	}

	if err := h.storageClient.DeleteFile(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, errors.Internal("Failed to delete file", err))
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}
