package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cld *cloudinary.Cloudinary

// InitCloudinary connects to Cloudinary and verifies the credentials.
func InitCloudinary() error {
	var err error

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("cloudinary environment variables are not set")
	}

	cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("error initializing cloudinary: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = cld.Admin.Ping(ctx)
	if err != nil {
		return fmt.Errorf("error verifying cloudinary connection: %v", err)
	}

	LogSuccess("Cloudinary initialized and connection verified")
	return nil
}

func boolPointer(b bool) *bool {
	return &b
}

var validMediaExtensions = map[string][]string{
	"image": {".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"},
	"video": {".mp4", ".mov", ".webm", ".avi", ".mkv"},
}

func isValidMediaFile(filename, mediaType string) bool {
	lowerFilename := strings.ToLower(filename)
	for _, ext := range validMediaExtensions[mediaType] {
		if strings.HasSuffix(lowerFilename, ext) {
			return true
		}
	}
	return false
}

// UploadMedia pushes a content file to Cloudinary and returns its secure URL.
// mediaType is "image" or "video" and gates the accepted extensions.
func UploadMedia(file *multipart.FileHeader, folder, mediaType string) (string, error) {
	if !isValidMediaFile(file.Filename, mediaType) {
		return "", fmt.Errorf("unsupported %s format: %s", mediaType, file.Filename)
	}

	// 100MB cap, videos included.
	if file.Size > 100*1024*1024 {
		return "", fmt.Errorf("file too large, maximum 100MB allowed")
	}

	if cld == nil {
		if err := InitCloudinary(); err != nil {
			return "", err
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s_%d", mediaType, time.Now().UnixNano())
	uploadParams := uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		UseFilename:    boolPointer(true),
		UniqueFilename: boolPointer(true),
		Overwrite:      boolPointer(false),
		ResourceType:   "auto",
	}

	uploadResult, err := cld.Upload.Upload(ctx, src, uploadParams)
	if err != nil {
		return "", fmt.Errorf("error uploading to cloudinary: %v", err)
	}
	if uploadResult.SecureURL == "" {
		return "", fmt.Errorf("empty secure URL in cloudinary response")
	}
	return uploadResult.SecureURL, nil
}

// DeleteMedia removes a previously uploaded asset identified by its URL.
func DeleteMedia(mediaURL string) error {
	if cld == nil {
		if err := InitCloudinary(); err != nil {
			return err
		}
	}

	publicID := publicIDFromURL(mediaURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public id from URL: %s", mediaURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// publicIDFromURL strips the delivery prefix and the file extension from a
// Cloudinary URL, keeping the folder-qualified public id.
func publicIDFromURL(mediaURL string) string {
	parts := strings.Split(mediaURL, "/upload/")
	if len(parts) != 2 {
		return ""
	}
	path := parts[1]
	// Version segment, e.g. v1712345678/
	if strings.HasPrefix(path, "v") {
		if idx := strings.Index(path, "/"); idx > 0 {
			path = path[idx+1:]
		}
	}
	if idx := strings.LastIndex(path, "."); idx > 0 {
		path = path[:idx]
	}
	return path
}
