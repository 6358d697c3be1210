package port

import (
	"context"

	"github.com/google/uuid"

	"haciendas/internal/domain"
)

// DocumentRepository persists parsed settlement documents and the role the
// operator declared for each.
type DocumentRepository interface {
	Save(ctx context.Context, doc *domain.SettlementDoc, role domain.Role) (uuid.UUID, error)
	SetRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	List(ctx context.Context) ([]domain.StoredDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
