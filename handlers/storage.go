package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"proconecta/middleware"
	"proconecta/services/lifecycle"
	"proconecta/services/storage"
	"proconecta/services/user"
	"proconecta/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler exposes photo upload and URL resolution endpoints.
type StorageHandler struct {
	Storage     storage.StorageService
	UserService user.UserService
	Lifecycle   lifecycle.LifecycleService
}

func (h *StorageHandler) saveTempUpload(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "File not provided", err.Error())
		return "", false
	}

	tempFilePath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save file", err.Error())
		return "", false
	}
	return tempFilePath, true
}

// UploadProfilePhotoHandler handles POST /users/me/photo.
func (h *StorageHandler) UploadProfilePhotoHandler(c *gin.Context) {
	tempFilePath, ok := h.saveTempUpload(c)
	if !ok {
		return
	}
	defer os.Remove(tempFilePath)

	actorID := middleware.ActorID(c)
	publicID, err := h.Storage.UploadProfilePhoto(c.Request.Context(), actorID, tempFilePath)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := h.UserService.SetPhotoFlag(actorID, true); err != nil {
		utils.RespondError(c, err)
		return
	}

	url, err := h.Storage.PhotoURL(c.Request.Context(), publicID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photoRef": publicID, "downloadURL": url})
}

// UploadServicePhotoHandler handles POST /services/:id/photos.
func (h *StorageHandler) UploadServicePhotoHandler(c *gin.Context) {
	tempFilePath, ok := h.saveTempUpload(c)
	if !ok {
		return
	}
	defer os.Remove(tempFilePath)

	serviceID := c.Param("id")
	publicID, err := h.Storage.UploadServicePhoto(c.Request.Context(), serviceID, tempFilePath)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	// Attaching validates the caller is a party to the request; an
	// upload that fails the check is removed so no orphan ref remains.
	actorID := middleware.ActorID(c)
	if _, err := h.Lifecycle.AttachPhoto(c.Request.Context(), actorID, serviceID, publicID); err != nil {
		if delErr := h.Storage.DeletePhoto(c.Request.Context(), publicID); delErr != nil {
			utils.GetLogger().Warn("failed to remove rejected service photo",
				zap.String("photoRef", publicID), zap.Error(delErr))
		}
		utils.RespondError(c, err)
		return
	}

	url, err := h.Storage.PhotoURL(c.Request.Context(), publicID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photoRef": publicID, "downloadURL": url})
}

// PhotoURLHandler handles GET /photos/*ref.
func (h *StorageHandler) PhotoURLHandler(c *gin.Context) {
	ref := c.Param("ref")
	if len(ref) > 0 && ref[0] == '/' {
		ref = ref[1:]
	}
	if ref == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query", "photo reference is required")
		return
	}

	url, err := h.Storage.PhotoURL(c.Request.Context(), ref)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadURL": url})
}
