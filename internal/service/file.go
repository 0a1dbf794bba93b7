package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/studytrail/internal/model"
	"github.com/templui/studytrail/internal/repository"
	"github.com/templui/studytrail/internal/storage"
	"github.com/templui/studytrail/internal/validation"
)

type FileService struct {
	fileRepo repository.FileRepository
	goalRepo repository.GoalRepository
	storage  storage.Storage
	now      func() time.Time
}

func NewFileService(fileRepo repository.FileRepository, goalRepo repository.GoalRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		goalRepo: goalRepo,
		storage:  storage,
		now:      time.Now,
	}
}

// Upload validates a study material upload, stores it and records it.
// When goalID is set the file is attached to that goal right away.
func (s *FileService) Upload(ctx context.Context, userID, goalID string, header *multipart.FileHeader) (*model.File, error) {
	contentType, err := validation.ValidateFile(header, validation.StudyMaterialConstraints)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	return s.Store(ctx, userID, goalID, header.Filename, contentType, header.Size, file)
}

// Store writes already validated content and creates the file record.
func (s *FileService) Store(ctx context.Context, userID, goalID, originalName, contentType string, size int64, r io.Reader) (*model.File, error) {
	ownerType, ownerID := model.FileOwnerUser, userID
	if goalID != "" {
		if _, err := s.goalRepo.ByID(userID, goalID); err != nil {
			return nil, err
		}
		ownerType, ownerID = model.FileOwnerGoal, goalID
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	filename := uuid.New().String() + ext
	folderName := model.FileTypeStudyMaterial + "s"
	storagePath := path.Join("private", folderName, filename)

	err := s.storage.Save(ctx, storagePath, r, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	fileModel := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    ownerType,
		OwnerID:      ownerID,
		Type:         model.FileTypeStudyMaterial,
		Filename:     filename,
		OriginalName: filepath.Base(originalName),
		MimeType:     contentType,
		Size:         size,
		StoragePath:  storagePath,
		CreatedAt:    s.now(),
	}

	err = s.fileRepo.Create(fileModel)
	if err != nil {
		// If DB insert fails, try to cleanup the uploaded file
		delErr := s.storage.Delete(ctx, storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return fileModel, nil
}

// ByID returns a file owned by userID.
func (s *FileService) ByID(userID, fileID string) (*model.File, error) {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return nil, err
	}
	if file.UserID != userID {
		return nil, repository.ErrFileNotFound
	}
	return file, nil
}

// LinkToGoal attaches a file to one of the user's goals and returns the
// updated record.
func (s *FileService) LinkToGoal(userID, fileID, goalID string) (*model.File, error) {
	file, err := s.ByID(userID, fileID)
	if err != nil {
		return nil, err
	}
	if file.LinkedTo(goalID) {
		return file, nil
	}
	if _, err := s.goalRepo.ByID(userID, goalID); err != nil {
		return nil, err
	}

	err = s.fileRepo.Link(fileID, model.FileOwnerGoal, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to link file: %w", err)
	}
	file.OwnerType, file.OwnerID = model.FileOwnerGoal, goalID
	return file, nil
}

// URL returns a time-limited download link for the file.
func (s *FileService) URL(ctx context.Context, userID, fileID string) (string, error) {
	file, err := s.ByID(userID, fileID)
	if err != nil {
		return "", err
	}
	return s.storage.URL(ctx, file.StoragePath)
}

// AllUserFiles retrieves all files owned by a user (regardless of owner_type)
func (s *FileService) AllUserFiles(userID string) ([]*model.File, error) {
	return s.fileRepo.AllUserFiles(userID)
}

// RelatedFileNames lists the original names of the files attached to the
// goal, or of all the user's files when none are attached.
func (s *FileService) RelatedFileNames(userID, goalID string) ([]string, error) {
	files, err := s.fileRepo.Files(model.FileOwnerGoal, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal files: %w", err)
	}
	if len(files) == 0 {
		files, err = s.fileRepo.AllUserFiles(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list user files: %w", err)
		}
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.OriginalName)
	}
	return names, nil
}

// Delete removes a file from storage and database
func (s *FileService) Delete(ctx context.Context, userID, fileID string) error {
	file, err := s.ByID(userID, fileID)
	if err != nil {
		return err
	}

	// Delete from storage (best effort)
	delErr := s.storage.Delete(ctx, file.StoragePath)
	if delErr != nil {
		slog.Error("failed to delete file from storage", "error", delErr, "path", file.StoragePath)
	}

	err = s.fileRepo.Delete(fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}
