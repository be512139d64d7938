package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// Images above this size are re-encoded before they are stored.
const compressThreshold = 1 << 20

// maxImageWidth bounds the width of stored justification scans.
const maxImageWidth = 1600

type FileService interface {
	// UploadJustification stores a supporting document for an absence and
	// returns its storage path
	UploadJustification(ctx context.Context, absenceID string, file io.Reader, filename string) (string, error)

	Open(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

// UploadJustification implements FileService. PDFs are stored untouched;
// large photos are scaled down and stored as JPEG.
func (s *fileServiceImpl) UploadJustification(ctx context.Context, absenceID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var body io.Reader = file
	switch ext {
	case ".pdf":
	case ".jpg", ".jpeg", ".png":
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read image: %w", err)
		}
		if len(buffer) > compressThreshold {
			compressed, err := compressImage(buffer)
			if err != nil {
				return "", fmt.Errorf("failed to compress image: %w", err)
			}
			buffer = compressed
			ext = ".jpg"
		}
		body = bytes.NewReader(buffer)
	default:
		return "", fmt.Errorf("invalid file type: only pdf, jpg, jpeg, png allowed")
	}

	// absences/{id}/justification-{timestamp}.{ext}
	newFilename := fmt.Sprintf("justification-%d%s", s.now().Unix(), ext)
	target := path.Join("absences", absenceID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, body, target)
	if err != nil {
		return "", fmt.Errorf("failed to upload justification: %w", err)
	}
	return uploadedPath, nil
}

// Open implements FileService.
func (s *fileServiceImpl) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// compressImage scales the image down to maxImageWidth when wider and
// re-encodes it as JPEG.
func compressImage(buffer []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageWidth {
		height := bounds.Dy() * maxImageWidth / bounds.Dx()
		img = resizeImage(img, maxImageWidth, max(height, 1))
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
