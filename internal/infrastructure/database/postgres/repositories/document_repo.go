package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// Document lifecycle statuses.
const (
	DocumentUploaded   = "uploaded"
	DocumentProcessing = "processing"
	DocumentCompleted  = "completed"
	DocumentFailed     = "failed"
)

// Document is the stored metadata for one uploaded lease file.  The bytes
// themselves live in object storage under ObjectKey.
type Document struct {
	ID          string
	ObjectKey   string
	Filename    string
	ContentType string
	SizeBytes   int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentRepository persists document metadata.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository builds a repository over the given pool.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create inserts a freshly uploaded document in the uploaded state.
func (r *DocumentRepository) Create(ctx context.Context, doc *Document) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO documents (id, object_key, filename, content_type, size_bytes, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID, doc.ObjectKey, doc.Filename, doc.ContentType, doc.SizeBytes, DocumentUploaded)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError,
			fmt.Sprintf("insert document %s", doc.ID))
	}
	return nil
}

// Get loads a document by id.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*Document, error) {
	doc := &Document{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, object_key, filename, content_type, size_bytes, status, created_at, updated_at
		 FROM documents WHERE id = $1`, id).
		Scan(&doc.ID, &doc.ObjectKey, &doc.Filename, &doc.ContentType,
			&doc.SizeBytes, &doc.Status, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeDocumentNotFound, "document %s not found", id)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError,
			fmt.Sprintf("load document %s", id))
	}
	return doc, nil
}

// UpdateStatus moves a document to a new lifecycle status.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError,
			fmt.Sprintf("update document %s", id))
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.Newf(pkgerrors.ErrCodeDocumentNotFound, "document %s not found", id)
	}
	return nil
}
