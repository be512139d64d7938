package badge

import "context"

type BadgeService interface {
	// Render encodes the badge of a known person as a PNG image
	Render(ctx context.Context, req RenderRequest) (Badge, error)
}
