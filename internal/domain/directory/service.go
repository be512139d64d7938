package directory

import "context"

// DirectoryService resolves badge codes to people across employees and clients.
type DirectoryService interface {
	// FindByCode looks the code up in both directories.
	FindByCode(ctx context.Context, code string) (Person, error)

	// Resolve is FindByCode plus a check that the person matches what the
	// scan mode expects.
	Resolve(ctx context.Context, code string, mode ScanMode) (Person, error)
}
