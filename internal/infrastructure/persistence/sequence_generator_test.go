package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeworks/backend/internal/domain/billing"
	"gorm.io/gorm"
)

func TestGormNumberGenerator_Next(t *testing.T) {
	t.Run("increments existing counter", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		gen := NewGormNumberGenerator(db)

		rows := sqlmock.NewRows([]string{"kind", "next_value"}).
			AddRow("invoice", 1042)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "document_sequences" WHERE kind = \$1 .* FOR UPDATE`).
			WithArgs("invoice", 1).
			WillReturnRows(rows)
		mock.ExpectExec(`UPDATE "document_sequences" SET "next_value"=\$1 WHERE kind = \$2`).
			WithArgs(int64(1043), "invoice").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		number, err := gen.Next(context.Background(), billing.DocumentTypeInvoice)

		assert.NoError(t, err)
		assert.Equal(t, "INV-1042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seeds counter on first use", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		gen := NewGormNumberGenerator(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "document_sequences" WHERE kind = \$1 .* FOR UPDATE`).
			WithArgs("quotation", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "document_sequences"`).
			WithArgs("quotation", int64(1001)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "document_sequences" SET "next_value"=\$1 WHERE kind = \$2`).
			WithArgs(int64(1002), "quotation").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		number, err := gen.Next(context.Background(), billing.DocumentTypeQuotation)

		assert.NoError(t, err)
		assert.Equal(t, "Q-1001", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown document type", func(t *testing.T) {
		db, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		gen := NewGormNumberGenerator(db)

		number, err := gen.Next(context.Background(), billing.DocumentType("memo"))

		require.Error(t, err)
		assert.Empty(t, number)
	})

	t.Run("rolls back when update fails", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		gen := NewGormNumberGenerator(db)

		rows := sqlmock.NewRows([]string{"kind", "next_value"}).
			AddRow("receipt", 1005)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "document_sequences" WHERE kind = \$1 .* FOR UPDATE`).
			WithArgs("receipt", 1).
			WillReturnRows(rows)
		mock.ExpectExec(`UPDATE "document_sequences" SET "next_value"=\$1 WHERE kind = \$2`).
			WithArgs(int64(1006), "receipt").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		number, err := gen.Next(context.Background(), billing.DocumentTypeReceipt)

		assert.Error(t, err)
		assert.Empty(t, number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
