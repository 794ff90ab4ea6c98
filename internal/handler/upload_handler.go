package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vertice.mx/concesionario/pkg/apperror"
	"vertice.mx/concesionario/pkg/response"
	"vertice.mx/concesionario/pkg/storage"
)

type UploadHandler struct {
	storage storage.ImageStorage
	folder  string
}

func NewUploadHandler(imageStorage storage.ImageStorage, folder string) *UploadHandler {
	return &UploadHandler{storage: imageStorage, folder: folder}
}

// Upload receives a multipart image and returns its hosted URL, used by the
// client for vehicle photos and brand logos.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		response.ResponseError(c, apperror.New(http.StatusServiceUnavailable, "El servicio de imágenes no está disponible", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("No se proporcionó ningún archivo"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	url, err := h.storage.UploadImage(c.Request.Context(), file, h.folder, fileHeader.Filename)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
