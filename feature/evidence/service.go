package evidence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"asset-inventory/core/storage"
	"asset-inventory/feature/criticality/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Prefix is the bucket folder holding evidence objects.
const Prefix = "evidence/"

// ErrInvalidName is returned for object names outside an asset's folder.
var ErrInvalidName = errors.New("invalid evidence name")

// AssetStore reads assets and replaces their evidence list.
type AssetStore interface {
	GetAsset(ctx context.Context, id uint) (*models.Asset, error)
	SetEvidence(ctx context.Context, assetID uint, urls []string) error
}

// Item is one stored evidence object.
type Item struct {
	Name   string `json:"name"`
	Key    string `json:"key"`
	URL    string `json:"url"`
	Size   int64  `json:"size"`
	Linked bool   `json:"linked"`
}

// Service stores evidence files and links them to assets.
type Service struct {
	client  storage.Client
	storage storage.Config
	assets  AssetStore
	logger  *zap.Logger

	// mu serializes read-modify-write of asset evidence lists.
	mu sync.Mutex
}

// NewService creates a new evidence service.
func NewService(client storage.Client, cfg storage.Config, assets AssetStore, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		storage: cfg,
		assets:  assets,
		logger:  logger,
	}
}

// ObjectKey returns the bucket key of an evidence object.
func ObjectKey(assetID uint, name string) string {
	return Prefix + strconv.FormatUint(uint64(assetID), 10) + "/" + name
}

// Upload stores a file under a fresh name and appends its URL to the asset.
// The original file name only contributes its extension.
func (s *Service) Upload(ctx context.Context, assetID uint, filename, contentType string, r io.Reader, size int64) (*Item, error) {
	if _, err := s.assets.GetAsset(ctx, assetID); err != nil {
		return nil, err
	}

	name := uuid.NewString() + strings.ToLower(path.Ext(filename))
	key := ObjectKey(assetID, name)

	if _, err := s.client.PutObject(ctx, s.storage.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("failed to upload evidence %s: %w", key, err)
	}

	url := s.storage.ObjectURL(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	urls := append(slices.Clone(asset.Evidence), url)
	if err := s.assets.SetEvidence(ctx, assetID, urls); err != nil {
		// The object is orphaned without a link; drop it.
		if rmErr := s.client.RemoveObject(ctx, s.storage.Bucket, key, minio.RemoveObjectOptions{}); rmErr != nil {
			s.logger.Warn("Failed to remove unlinked evidence", zap.String("key", key), zap.Error(rmErr))
		}
		return nil, err
	}

	s.logger.Info("Evidence uploaded", zap.Uint("asset_id", assetID), zap.String("key", key), zap.Int64("size", size))
	return &Item{Name: name, Key: key, URL: url, Size: size, Linked: true}, nil
}

// List returns the evidence objects stored for an asset.
func (s *Service) List(ctx context.Context, assetID uint) ([]Item, error) {
	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	prefix := ObjectKey(assetID, "")
	items := make([]Item, 0)
	for obj := range s.client.ListObjects(ctx, s.storage.Bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list evidence of asset %d: %w", assetID, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" {
			continue
		}
		url := s.storage.ObjectURL(obj.Key)
		items = append(items, Item{
			Name:   name,
			Key:    obj.Key,
			URL:    url,
			Size:   obj.Size,
			Linked: slices.Contains(asset.Evidence, url),
		})
	}
	return items, nil
}

// Delete unlinks an evidence object from the asset and removes it from the bucket.
// Records already holding the URL keep it until the next synchronization.
func (s *Service) Delete(ctx context.Context, assetID uint, name string) error {
	if name == "" || strings.Contains(name, "/") || name == "." || name == ".." {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	key := ObjectKey(assetID, name)
	url := s.storage.ObjectURL(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if i := slices.Index(asset.Evidence, url); i >= 0 {
		urls := slices.Delete(slices.Clone(asset.Evidence), i, i+1)
		if err := s.assets.SetEvidence(ctx, assetID, urls); err != nil {
			return err
		}
	}

	if err := s.client.RemoveObject(ctx, s.storage.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove evidence %s: %w", key, err)
	}
	s.logger.Info("Evidence removed", zap.Uint("asset_id", assetID), zap.String("key", key))
	return nil
}
