package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *fileServiceImpl {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return &fileServiceImpl{
		storage: local,
		now:     func() time.Time { return time.Unix(1687000000, 0) },
	}
}

func TestUploadJustification_PDFStoredAsIs(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	stored, err := s.UploadJustification(ctx, "abs-1", strings.NewReader("%PDF-1.4"), "certificat.PDF")
	require.NoError(t, err)
	assert.Equal(t, "absences/abs-1/justification-1687000000.pdf", stored)

	rc, err := s.Open(ctx, stored)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
}

func TestUploadJustification_RejectsOtherTypes(t *testing.T) {
	_, err := newService(t).UploadJustification(context.Background(), "abs-1", strings.NewReader("x"), "notes.docx")
	assert.Error(t, err)
}

func TestUploadJustification_CompressesLargeImages(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	// Random noise keeps the PNG above the compression threshold.
	img := image.NewRGBA(image.Rect(0, 0, 2400, 600))
	rng := rand.New(rand.NewPCG(1, 2))
	for y := 0; y < 600; y++ {
		for x := 0; x < 2400; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.Greater(t, buf.Len(), compressThreshold)

	stored, err := s.UploadJustification(ctx, "abs-2", &buf, "scan.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, ".jpg"))

	rc, err := s.Open(ctx, stored)
	require.NoError(t, err)
	defer rc.Close()
	decoded, _, err := image.Decode(rc)
	require.NoError(t, err)
	assert.Equal(t, maxImageWidth, decoded.Bounds().Dx())
	assert.Equal(t, 400, decoded.Bounds().Dy())
}

func TestUploadJustification_SmallImageKeepsExtension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	stored, err := newService(t).UploadJustification(context.Background(), "abs-3", &buf, "scan.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, ".png"))
}
