package handlers

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "github.com/shixiaoya/materials/internal/errors"
)

const (
	mimeBytesNumber = 512
	maxBatchImages  = 10
	defaultQuality  = 80
)

// UploadedImage describes a stored image returned to the admin UI
type UploadedImage struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

type UploadHandler struct {
	uploadDir         string
	validImgMimeTypes map[string]struct{}
}

func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
		validImgMimeTypes: map[string]struct{}{
			"image/gif":   {},
			"image/jpeg":  {},
			"image/pjpeg": {},
			"image/png":   {},
			"image/tiff":  {},
			"image/webp":  {},
			"image/bmp":   {},
		},
	}
}

// UploadImage accepts a single multipart image, optionally resizes it to fit
// the width/height query bounds and re-encodes it as JPEG with the requested
// quality
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHdr, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewInvalidArgumentErr("请选择要上传的图片")
	}

	width := intQueryParam(c, "width", 0)
	height := intQueryParam(c, "height", 0)
	quality := intQueryParam(c, "quality", defaultQuality)

	uploaded, err := h.store(fileHdr, width, height, quality)
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, uploaded, "图片上传成功")
}

// UploadImages accepts up to 10 multipart images at once, files failing to
// transcode are skipped instead of failing the whole batch
func (h *UploadHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewInvalidArgumentErr("请选择要上传的图片")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return apperrors.NewInvalidArgumentErr("请选择要上传的图片")
	}
	if len(files) > maxBatchImages {
		return apperrors.NewInvalidArgumentErr(fmt.Sprintf("最多一次上传 %d 张图片", maxBatchImages))
	}

	quality := intQueryParam(c, "quality", defaultQuality)

	uploaded := make([]UploadedImage, 0, len(files))
	for _, fileHdr := range files {
		img, err := h.store(fileHdr, 0, 0, quality)
		if err != nil {
			logrus.WithError(err).WithField("file", fileHdr.Filename).Warn("failed to process uploaded image")
			continue
		}
		uploaded = append(uploaded, *img)
	}

	return respondMessage(c, http.StatusOK, uploaded, fmt.Sprintf("成功上传 %d 张图片", len(uploaded)))
}

func (h *UploadHandler) store(fileHdr *multipart.FileHeader, width, height, quality int) (*UploadedImage, error) {
	file, err := fileHdr.Open()
	if err != nil {
		return nil, apperrors.NewInvalidArgumentErr(fmt.Sprintf("failed to load file content - %v", err))
	}
	defer file.Close()

	mimeBuff := make([]byte, mimeBytesNumber)
	if _, err := file.Read(mimeBuff); err != nil {
		return nil, err
	}

	mimeType := http.DetectContentType(mimeBuff)
	if _, ok := h.validImgMimeTypes[mimeType]; !ok {
		return nil, apperrors.NewInvalidArgumentErr("只允许上传图片文件")
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentErr(fmt.Sprintf("failed to decode image - %v", err))
	}

	if width > 0 || height > 0 {
		// fit inside bounds without enlarging
		bounds := img.Bounds()
		if width <= 0 || width > bounds.Dx() {
			width = bounds.Dx()
		}
		if height <= 0 || height > bounds.Dy() {
			height = bounds.Dy()
		}
		img = imaging.Fit(img, width, height, imaging.Lanczos)
	}

	if quality < 1 || quality > 100 {
		quality = defaultQuality
	}

	imagesDir := filepath.Join(h.uploadDir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%d-%d.jpg", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	path := filepath.Join(imagesDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if err := imaging.Encode(dst, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		os.Remove(path)
		return nil, err
	}

	stat, err := dst.Stat()
	if err != nil {
		return nil, err
	}

	return &UploadedImage{
		URL:          "/uploads/images/" + filename,
		Filename:     filename,
		OriginalName: fileHdr.Filename,
		Size:         stat.Size(),
	}, nil
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
