package badge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
	"github.com/gestipresence/presence-backend-go/internal/domain/badge"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/scan"
)

type BadgeServiceImpl struct {
	directoryService directory.DirectoryService
	now              func() time.Time
}

func NewBadgeService(directoryService directory.DirectoryService) badge.BadgeService {
	return &BadgeServiceImpl{
		directoryService: directoryService,
		now:              time.Now,
	}
}

// Render implements badge.BadgeService. QR badges carry the JSON payload the
// scanner detector reads back; barcodes carry the bare code.
func (s *BadgeServiceImpl) Render(ctx context.Context, req badge.RenderRequest) (badge.Badge, error) {
	if err := req.Validate(); err != nil {
		return badge.Badge{}, err
	}

	person, err := s.directoryService.FindByCode(ctx, req.Code)
	if err != nil {
		return badge.Badge{}, err
	}

	format := badge.Format(req.Format)
	var code barcode.Barcode
	var width, height int
	switch format {
	case badge.FormatBarcode:
		code, err = code128.Encode(person.Code)
		width, height = req.Size, req.Size/3
	default:
		var payload []byte
		payload, err = json.Marshal(scan.NewPayload(person, s.now()))
		if err == nil {
			code, err = qr.Encode(string(payload), qr.M, qr.Auto)
		}
		width, height = req.Size, req.Size
	}
	if err != nil {
		return badge.Badge{}, fmt.Errorf("%w: %v", badge.ErrEncodingFailed, err)
	}

	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return badge.Badge{}, fmt.Errorf("%w: %v", badge.ErrEncodingFailed, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return badge.Badge{}, fmt.Errorf("%w: %v", badge.ErrEncodingFailed, err)
	}

	return badge.Badge{
		Code:        person.Code,
		Format:      format,
		ContentType: "image/png",
		Filename:    fmt.Sprintf("badge-%s-%s.png", person.Code, format),
		Image:       buf.Bytes(),
	}, nil
}
