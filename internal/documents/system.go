package documents

import (
	"context"

	"github.com/JaimeStill/neurocore/pkg/pagination"
)

// System defines the document management operations.
// Every operation is scoped to ownerID and only sees active documents.
type System interface {
	List(ctx context.Context, ownerID int64, req pagination.Request) ([]Document, error)
	Find(ctx context.Context, ownerID, id int64) (*Document, error)
	Create(ctx context.Context, ownerID int64, cmd CreateCommand) (*Document, error)
	Update(ctx context.Context, ownerID, id int64, cmd UpdateCommand) (*Document, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
