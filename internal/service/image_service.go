package service

import (
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/config"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/domain"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/repository"
	"github.com/LongVanNgo/CAPTCHA-solver/pkg/resample"
	"github.com/LongVanNgo/CAPTCHA-solver/pkg/utils"
)

// ImageService runs batch resizes over the configured directories and
// publishes their output.
type ImageService interface {
	ResizeImages(ctx context.Context) (*domain.RunReport, error)
	ListImages(ctx context.Context) ([]domain.Image, error)
	PublishImages(ctx context.Context) ([]domain.PublishedObject, error)
	ListPublished(ctx context.Context) ([]string, error)
}

type imageService struct {
	s3Repo repository.S3Repository
	cfg    *config.Config
	log    *zap.Logger
	proc   *utils.ImageProcessor
	filter string

	// mu serializes runs; a batch is a single sequential pass.
	mu sync.Mutex
}

// NewImageService builds the service. s3Repo may be nil, in which case the
// publish operations return domain.ErrPublishDisabled.
func NewImageService(s3Repo repository.S3Repository, cfg *config.Config, log *zap.Logger) (ImageService, error) {
	filter, err := resample.Lookup(cfg.Resize.Filter)
	if err != nil {
		return nil, err
	}

	return &imageService{
		s3Repo: s3Repo,
		cfg:    cfg,
		log:    log,
		proc:   utils.NewImageProcessor(log, filter),
		filter: filter.Name(),
	}, nil
}

// Run resizes every entry of cfg.SourceDir into cfg.DestDir.
func Run(ctx context.Context, cfg config.ResizeConfig, log *zap.Logger) (*domain.RunReport, error) {
	svc, err := NewImageService(nil, &config.Config{Resize: cfg}, log)
	if err != nil {
		return nil, err
	}
	return svc.ResizeImages(ctx)
}

// ResizeImages checks both directories, then resizes every source entry
// into the destination. On failure the partial report is returned with the error.
func (s *imageService) ResizeImages(ctx context.Context) (*domain.RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, dst := s.cfg.Resize.SourceDir, s.cfg.Resize.DestDir
	if err := checkDir("source", src); err != nil {
		return nil, err
	}
	if err := checkDir("destination", dst); err != nil {
		return nil, err
	}

	report := &domain.RunReport{
		RunID:     uuid.New().String(),
		SourceDir: src,
		DestDir:   dst,
		Filter:    s.filter,
		StartedAt: time.Now(),
	}
	log := s.log.With(zap.String("run_id", report.RunID))

	log.Info("Starting batch resize",
		zap.String("source_dir", src),
		zap.String("dest_dir", dst),
		zap.String("filter", s.filter))

	images, err := s.proc.ProcessLocalImages(ctx, src, dst)
	report.Images = images
	report.Duration = time.Since(report.StartedAt)
	if err != nil {
		log.Error("Batch resize aborted",
			zap.Int("written", len(images)),
			zap.Error(err))
		return report, err
	}

	log.Info("Batch resize completed",
		zap.Int("written", len(images)),
		zap.Duration("duration", report.Duration))

	return report, nil
}

// checkDir fails with a PathError unless path is an existing directory.
func checkDir(role, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &domain.PathError{Role: role, Path: path, Err: err}
	}
	if !info.IsDir() {
		return &domain.PathError{Role: role, Path: path, Err: fmt.Errorf("not a directory")}
	}
	return nil
}

func (s *imageService) ListImages(ctx context.Context) ([]domain.Image, error) {
	dir := s.cfg.Resize.DestDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.PathError{Role: "destination", Path: dir, Err: err}
	}

	images := make([]domain.Image, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.log.Warn("Failed to stat output file",
				zap.String("file", entry.Name()),
				zap.Error(err))
			continue
		}

		img := domain.Image{
			Name:        entry.Name(),
			OutputPath:  filepath.Join(dir, entry.Name()),
			Size:        info.Size(),
			ContentType: utils.ContentType(entry.Name()),
			ProcessedAt: info.ModTime(),
		}
		if w, h, err := decodeSize(img.OutputPath); err == nil {
			img.Width, img.Height = w, h
		} else {
			s.log.Debug("Unreadable image header",
				zap.String("file", entry.Name()),
				zap.Error(err))
		}

		images = append(images, img)
	}

	return images, nil
}

func decodeSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func (s *imageService) PublishImages(ctx context.Context) ([]domain.PublishedObject, error) {
	if s.s3Repo == nil {
		return nil, domain.ErrPublishDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	images, err := s.ListImages(ctx)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	s.log.Info("Publishing resized images",
		zap.String("batch_id", batchID),
		zap.Int("count", len(images)))

	published := make([]domain.PublishedObject, 0, len(images))
	for _, img := range images {
		key := listPrefix(s.cfg.S3.Prefix) + path.Join(batchID, img.Name)
		if err := s.upload(ctx, img, key); err != nil {
			return published, fmt.Errorf("publish %s as %s: %w", img.Name, key, err)
		}

		published = append(published, domain.PublishedObject{
			Name:        img.Name,
			Key:         key,
			Size:        img.Size,
			ContentType: img.ContentType,
			UploadedAt:  time.Now(),
		})
	}

	s.log.Info("Published resized images",
		zap.String("batch_id", batchID),
		zap.Int("count", len(published)))

	return published, nil
}

func (s *imageService) upload(ctx context.Context, img domain.Image, key string) error {
	file, err := os.Open(img.OutputPath)
	if err != nil {
		return &domain.IOError{Op: "read", Name: img.Name, Err: err}
	}
	defer file.Close()

	return s.s3Repo.UploadFile(ctx, key, file, img.Size, img.ContentType)
}

func (s *imageService) ListPublished(ctx context.Context) ([]string, error) {
	if s.s3Repo == nil {
		return nil, domain.ErrPublishDisabled
	}
	return s.s3Repo.ListFiles(ctx, listPrefix(s.cfg.S3.Prefix))
}

// listPrefix normalizes the configured key prefix: surrounding slashes are
// dropped and an empty prefix stays empty, so keys never start with "/".
func listPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
