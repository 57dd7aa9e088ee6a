package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"ambassador_portal/internal/common"
	"ambassador_portal/internal/domain/model"
	"ambassador_portal/internal/domain/repository"
	"ambassador_portal/internal/platform/config"
	"ambassador_portal/internal/platform/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadBytes = 5 << 20 // 5MB

type UploadService struct {
	uploadRepo     repository.UploadRepository
	ambassadorRepo repository.AmbassadorRepository
	store          storage.ObjectStore
}

func NewUploadService(
	uploadRepo repository.UploadRepository,
	ambassadorRepo repository.AmbassadorRepository,
	store storage.ObjectStore,
) *UploadService {
	return &UploadService{uploadRepo: uploadRepo, ambassadorRepo: ambassadorRepo, store: store}
}

// SaveProof validates and stores one proof-of-outreach image: the bytes go
// to the image host, the entry is appended to the ambassador's category
// list. Image-host failure surfaces to the uploader.
func (s *UploadService) SaveProof(ctx context.Context, ambassadorID, category, originalName, contentType string, size int64, reader io.Reader) (*model.Upload, error) {
	if !model.IsValidCategory(category) {
		return nil, fmt.Errorf("invalid upload type: %w", common.ErrBadRequest)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("only images allowed: %w", common.ErrValidation)
	}
	if size > maxUploadBytes {
		return nil, fmt.Errorf("file too large (max 5MB): %w", common.ErrValidation)
	}

	if _, err := s.ambassadorRepo.FindByID(ctx, ambassadorID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("ambassador not found: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up ambassador: %w", err)
	}

	key, err := buildObjectKey(ambassadorID, category, originalName)
	if err != nil {
		return nil, fmt.Errorf("failed to build object key: %w", err)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, config.AppConfig.UploadTimeout)
	defer cancel()

	url, publicID, err := s.store.Upload(uploadCtx, key, reader, contentType)
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", common.ErrUpstream)
	}

	upload := &model.Upload{
		ID:             uuid.NewString(),
		AmbassadorID:   ambassadorID,
		Category:       category,
		URL:            url,
		PublicID:       publicID,
		UploadedAt:     time.Now().UTC(),
		ApprovalStatus: model.ApprovalPending,
		Points:         0,
	}
	if err := s.uploadRepo.Append(ctx, upload); err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}
	return upload, nil
}

// CleanupObjects deletes every stored object owned by an ambassador from the
// image host. Best effort: failures are logged and swallowed so that account
// deletion always completes.
func (s *UploadService) CleanupObjects(ctx context.Context, ambassadorID string) {
	publicIDs, err := s.uploadRepo.ListPublicIDs(ctx, ambassadorID)
	if err != nil {
		zap.S().Warnw("failed to list objects for cleanup", "ambassador_id", ambassadorID, "error", err)
		return
	}
	for _, id := range publicIDs {
		deleteCtx, cancel := context.WithTimeout(ctx, config.AppConfig.UploadTimeout)
		if err := s.store.Delete(deleteCtx, id); err != nil {
			zap.S().Warnw("failed to delete object during cleanup", "public_id", id, "error", err)
		}
		cancel()
	}
}

func buildObjectKey(ambassadorID, category, originalName string) (string, error) {
	name := strings.TrimSpace(originalName)
	if name == "" {
		name = "upload"
	}
	name = strings.ReplaceAll(name, " ", "_")

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return fmt.Sprintf("ambassador/%s/%s/%s_%d_%s",
		category, ambassadorID, name, time.Now().UnixMilli(), hex.EncodeToString(buf)), nil
}
