package storage

import (
	"context"
	"time"
)

// PhotoURLTTL bounds how long a resolved delivery URL stays cached.
const PhotoURLTTL = 24 * time.Hour

// StorageService stores profile and demand photos and resolves their
// delivery URLs.
type StorageService interface {
	// UploadProfilePhoto stores the user's photo and returns its public
	// reference. Re-uploading replaces the previous photo.
	UploadProfilePhoto(ctx context.Context, userID, localFilePath string) (string, error)
	// UploadServicePhoto stores one photo attached to a demand and
	// returns its public reference.
	UploadServicePhoto(ctx context.Context, serviceID, localFilePath string) (string, error)
	// PhotoURL resolves a public reference to a delivery URL.
	PhotoURL(ctx context.Context, publicID string) (string, error)
	// DeletePhoto removes a stored photo and its cached URL.
	DeletePhoto(ctx context.Context, publicID string) error
}
