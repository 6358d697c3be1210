package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"haciendas/internal/domain"
	"haciendas/internal/port"
)

// DocumentRepository is the SQLite-backed document store.
type DocumentRepository struct {
	db *sqlx.DB
}

var _ port.DocumentRepository = (*DocumentRepository)(nil)

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type documentRow struct {
	ID        string    `db:"id"`
	Filename  string    `db:"filename"`
	Role      string    `db:"role"`
	Payload   string    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

// Save stores a parsed document under a fresh id.
func (r *DocumentRepository) Save(ctx context.Context, doc *domain.SettlementDoc, role domain.Role) (uuid.UUID, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding document %s: %w", doc.Filename, err)
	}

	id := uuid.New()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, role, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), doc.Filename, string(role), string(payload), time.Now().UTC(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting document %s: %w", doc.Filename, err)
	}
	return id, nil
}

// SetRole updates the declared role of a stored document.
func (r *DocumentRepository) SetRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET role = ? WHERE id = ?`, string(role), id.String())
	if err != nil {
		return fmt.Errorf("updating role for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// List returns every stored document, oldest first.
func (r *DocumentRepository) List(ctx context.Context) ([]domain.StoredDocument, error) {
	var rows []documentRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, filename, role, payload, created_at FROM documents ORDER BY created_at, id`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	out := make([]domain.StoredDocument, 0, len(rows))
	for _, row := range rows {
		stored, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, stored)
	}
	return out, nil
}

// Delete removes a stored document.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (row documentRow) toDomain() (domain.StoredDocument, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return domain.StoredDocument{}, fmt.Errorf("stored id %q: %w", row.ID, err)
	}
	var doc domain.SettlementDoc
	if err := json.Unmarshal([]byte(row.Payload), &doc); err != nil {
		return domain.StoredDocument{}, fmt.Errorf("decoding document %s: %w", row.ID, err)
	}
	return domain.StoredDocument{
		ID:        id,
		Role:      domain.Role(row.Role),
		Doc:       doc,
		CreatedAt: row.CreatedAt,
	}, nil
}
