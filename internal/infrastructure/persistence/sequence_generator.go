package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/tradeworks/backend/internal/domain/billing"
	"github.com/tradeworks/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ensure GormNumberGenerator implements billing.NumberGenerator
var _ billing.NumberGenerator = (*GormNumberGenerator)(nil)

// GormNumberGenerator issues document numbers from the
// document_sequences table. Each call increments the counter inside a
// transaction holding a row lock, so concurrent callers never see the
// same value.
type GormNumberGenerator struct {
	db *gorm.DB
}

// NewGormNumberGenerator creates a new GormNumberGenerator
func NewGormNumberGenerator(db *gorm.DB) *GormNumberGenerator {
	return &GormNumberGenerator{db: db}
}

// Next returns the next reference number for the document type
func (g *GormNumberGenerator) Next(ctx context.Context, docType billing.DocumentType) (string, error) {
	if !docType.IsValid() {
		return "", shared.NewDomainError("INVALID_DOCUMENT_TYPE", fmt.Sprintf("Unknown document type: %s", docType))
	}

	var value int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq billing.DocumentSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("kind = ?", string(docType)).
			First(&seq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = billing.DocumentSequence{Kind: string(docType), NextValue: 1001}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		value = seq.NextValue
		return tx.Model(&billing.DocumentSequence{}).
			Where("kind = ?", seq.Kind).
			Update("next_value", seq.NextValue+1).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", docType, err)
	}

	return docType.FormatNumber(value), nil
}
