package storage

import (
	"context"
	"fmt"

	"proconecta/config"
	"proconecta/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/go-redis/redis/v8"
)

// CloudinaryStorageService stores photos in Cloudinary and caches
// resolved delivery URLs in Redis.
type CloudinaryStorageService struct {
	cld   *cloudinary.Cloudinary
	cache *redis.Client
}

// NewCloudinaryStorage builds the service from the loaded configuration.
func NewCloudinaryStorage() (*CloudinaryStorageService, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld, cache: utils.GetPhotoCacheClient()}, nil
}

func (s *CloudinaryStorageService) upload(ctx context.Context, localFilePath, folder, publicID string) (string, error) {
	overwrite := true
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder:    folder,
		PublicID:  publicID,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", &utils.NetworkError{Op: "photo upload", Err: err}
	}
	if result.PublicID == "" {
		return "", &utils.NetworkError{Op: "photo upload", Err: fmt.Errorf("no public ID returned")}
	}
	if result.SecureURL != "" {
		s.cache.Set(ctx, urlKey(result.PublicID), result.SecureURL, PhotoURLTTL)
	}
	return result.PublicID, nil
}

// UploadProfilePhoto stores the user's photo under a stable public ID so
// a re-upload replaces the old one in place.
func (s *CloudinaryStorageService) UploadProfilePhoto(ctx context.Context, userID, localFilePath string) (string, error) {
	return s.upload(ctx, localFilePath, "profiles", userID)
}

// UploadServicePhoto stores one demand photo. Multiple photos per demand
// each get their own generated public ID.
func (s *CloudinaryStorageService) UploadServicePhoto(ctx context.Context, serviceID, localFilePath string) (string, error) {
	return s.upload(ctx, localFilePath, fmt.Sprintf("services/%s", serviceID), "")
}

// PhotoURL resolves a public reference to its delivery URL, serving from
// the Redis cache when possible.
func (s *CloudinaryStorageService) PhotoURL(ctx context.Context, publicID string) (string, error) {
	if cached, err := s.cache.Get(ctx, urlKey(publicID)).Result(); err == nil && cached != "" {
		return cached, nil
	}

	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", &utils.NetworkError{Op: "photo URL resolution", Err: err}
	}
	url, err := img.String()
	if err != nil {
		return "", &utils.NetworkError{Op: "photo URL resolution", Err: err}
	}

	s.cache.Set(ctx, urlKey(publicID), url, PhotoURLTTL)
	return url, nil
}

// DeletePhoto removes the stored photo and drops its cached URL.
func (s *CloudinaryStorageService) DeletePhoto(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return &utils.NetworkError{Op: "photo deletion", Err: err}
	}
	s.cache.Del(ctx, urlKey(publicID))
	return nil
}

func urlKey(publicID string) string {
	return "photo:url:" + publicID
}
