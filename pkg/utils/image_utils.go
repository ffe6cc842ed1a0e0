package utils

import (
	"context"
	"fmt"
	"image"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // decode-only

	"github.com/LongVanNgo/CAPTCHA-solver/internal/domain"
	"github.com/LongVanNgo/CAPTCHA-solver/pkg/resample"
)

type ImageProcessor struct {
	log    *zap.Logger
	filter resample.Filter
	width  int
	height int
}

func NewImageProcessor(log *zap.Logger, filter resample.Filter) *ImageProcessor {
	return &ImageProcessor{
		log:    log,
		filter: filter,
		width:  domain.TargetWidth,
		height: domain.TargetHeight,
	}
}

// DecodeGray reads the file at path and returns it as a grayscale grid.
func (p *ImageProcessor) DecodeGray(path string) (*image.Gray, error) {
	name := filepath.Base(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, &domain.IOError{Op: "read", Name: name, Err: err}
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, &domain.DecodeError{Name: name, Err: err}
	}

	return resample.ToGray(img), nil
}

// Resize scales src to the processor's fixed output size.
func (p *ImageProcessor) Resize(src *image.Gray) *image.Gray {
	return p.filter.Resize(src, p.width, p.height)
}

// Encode writes img to path in the format implied by the path's extension.
// The image is encoded into a temporary file next to path and renamed into
// place, so a failed write never leaves a truncated file at path.
func (p *ImageProcessor) Encode(img image.Image, path string) error {
	name := filepath.Base(path)

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return &domain.IOError{Op: "encode", Name: name, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+name+".tmp-*")
	if err != nil {
		return &domain.IOError{Op: "write", Name: name, Err: err}
	}
	tmpPath := tmp.Name()

	if err := writeTemp(tmp, img, format); err != nil {
		os.Remove(tmpPath)
		return &domain.IOError{Op: "write", Name: name, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &domain.IOError{Op: "write", Name: name, Err: err}
	}
	return nil
}

func writeTemp(tmp *os.File, img image.Image, format imaging.Format) error {
	if err := imaging.Encode(tmp, img, format); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	return tmp.Close()
}

// ProcessFile runs decode, resize and encode for a single file.
func (p *ImageProcessor) ProcessFile(inputPath, outputPath string) (*domain.Image, error) {
	src, err := p.DecodeGray(inputPath)
	if err != nil {
		return nil, err
	}

	dst := p.Resize(src)
	if err := p.Encode(dst, outputPath); err != nil {
		return nil, err
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, &domain.IOError{Op: "write", Name: filepath.Base(outputPath), Err: err}
	}

	return &domain.Image{
		Name:         filepath.Base(outputPath),
		SourcePath:   inputPath,
		OutputPath:   outputPath,
		SourceWidth:  src.Bounds().Dx(),
		SourceHeight: src.Bounds().Dy(),
		Width:        dst.Bounds().Dx(),
		Height:       dst.Bounds().Dy(),
		Size:         info.Size(),
		ContentType:  ContentType(outputPath),
		ProcessedAt:  time.Now(),
	}, nil
}

// ProcessLocalImages resizes every entry of inputDir into outputDir under the
// same name. Entries are processed one at a time; the first failure stops the
// run and is returned. Files written before the failure are kept.
func (p *ImageProcessor) ProcessLocalImages(ctx context.Context, inputDir, outputDir string) ([]domain.Image, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, &domain.PathError{Role: "source", Path: inputDir, Err: err}
	}

	images := make([]domain.Image, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return images, fmt.Errorf("resize interrupted before %s: %w", entry.Name(), err)
		}

		inputPath := filepath.Join(inputDir, entry.Name())
		outputPath := filepath.Join(outputDir, entry.Name())

		img, err := p.ProcessFile(inputPath, outputPath)
		if err != nil {
			p.log.Error("Failed to resize image",
				zap.String("file", entry.Name()),
				zap.Error(err))
			return images, err
		}

		p.log.Debug("Image resized",
			zap.String("input", inputPath),
			zap.String("output", outputPath),
			zap.Int("source_width", img.SourceWidth),
			zap.Int("source_height", img.SourceHeight))

		images = append(images, *img)
	}

	return images, nil
}

// ContentType guesses the MIME type from the file extension.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
