package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"tdac-backend/internal/adapters/persistence/models"
	"tdac-backend/internal/core/domain"
)

// declarationRepository implements DeclarationRepository interface
type declarationRepository struct {
	db *gorm.DB
}

// NewDeclarationRepository creates a new declaration repository
func NewDeclarationRepository(db *gorm.DB) DeclarationRepository {
	return &declarationRepository{db: db}
}

// Create creates a new declaration
func (r *declarationRepository) Create(ctx context.Context, decl *models.Declaration) error {
	err := r.db.WithContext(ctx).Create(decl).Error
	if err != nil && isDuplicateKey(err) {
		return domain.ErrDuplicatePassportNo
	}
	return err
}

// GetByID gets a declaration by ID
func (r *declarationRepository) GetByID(ctx context.Context, id string) (*models.Declaration, error) {
	var decl models.Declaration
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&decl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeclarationNotFound
		}
		return nil, err
	}
	return &decl, nil
}

// List lists declarations ordered by creation time descending, with the
// total count for pagination.
func (r *declarationRepository) List(ctx context.Context, filter ListFilter) ([]*models.Declaration, int64, error) {
	var decls []*models.Declaration
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Declaration{})
	if filter.Variant != "" {
		query = query.Where("variant = ?", filter.Variant)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&decls).Error

	return decls, total, err
}

// Update saves a declaration and bumps updated_at
func (r *declarationRepository) Update(ctx context.Context, decl *models.Declaration) error {
	err := r.db.WithContext(ctx).Save(decl).Error
	if err != nil && isDuplicateKey(err) {
		return domain.ErrDuplicatePassportNo
	}
	return err
}

// Delete removes a declaration permanently (no soft delete)
func (r *declarationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Declaration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDeclarationNotFound
	}
	return nil
}

// CountByStatus counts declarations of one variant grouped by status
func (r *declarationRepository) CountByStatus(ctx context.Context, variant string) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&models.Declaration{}).
		Select("status, COUNT(*) as count").
		Where("variant = ?", variant).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// OccupationBreakdown counts declarations of one variant grouped by occupation
func (r *declarationRepository) OccupationBreakdown(ctx context.Context, variant string) (map[string]int64, error) {
	type row struct {
		Occupation string
		Count      int64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&models.Declaration{}).
		Select("occupation, COUNT(*) as count").
		Where("variant = ?", variant).
		Group("occupation").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Occupation] = rw.Count
	}
	return counts, nil
}

// Recent returns the most recently created declarations of one variant
func (r *declarationRepository) Recent(ctx context.Context, variant string, limit int) ([]*models.Declaration, error) {
	var decls []*models.Declaration
	err := r.db.WithContext(ctx).
		Where("variant = ?", variant).
		Order("created_at DESC").
		Limit(limit).
		Find(&decls).Error
	return decls, err
}

// ReferencedUploadURLs returns every attachment URL any declaration still
// references, for the orphaned-upload sweep.
func (r *declarationRepository) ReferencedUploadURLs(ctx context.Context) (map[string]bool, error) {
	var decls []models.Declaration
	err := r.db.WithContext(ctx).
		Select("passport_photo_url", "payment_slip_url").
		Where("passport_photo_url IS NOT NULL OR payment_slip_url IS NOT NULL").
		Find(&decls).Error
	if err != nil {
		return nil, err
	}

	refs := make(map[string]bool)
	for _, d := range decls {
		if d.PassportPhotoURL != nil {
			refs[*d.PassportPhotoURL] = true
		}
		if d.PaymentSlipURL != nil {
			refs[*d.PaymentSlipURL] = true
		}
	}
	return refs, nil
}

// isDuplicateKey detects unique-index violations across drivers. GORM
// translates them when TranslateError is enabled; the string checks cover
// drivers that don't.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
