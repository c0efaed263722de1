package repositories

import (
	"context"

	"tdac-backend/internal/adapters/persistence/models"
)

// AdminRepository defines admin repository interface
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
}

// ListFilter narrows declaration listings. Empty fields are ignored.
type ListFilter struct {
	Variant string
	Status  string
	Offset  int
	Limit   int
}

// DeclarationRepository defines declaration repository interface
type DeclarationRepository interface {
	Create(ctx context.Context, decl *models.Declaration) error
	GetByID(ctx context.Context, id string) (*models.Declaration, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Declaration, int64, error)
	Update(ctx context.Context, decl *models.Declaration) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, variant string) (map[string]int64, error)
	OccupationBreakdown(ctx context.Context, variant string) (map[string]int64, error)
	Recent(ctx context.Context, variant string, limit int) ([]*models.Declaration, error)
	ReferencedUploadURLs(ctx context.Context) (map[string]bool, error)
}
