package store

import (
	"context"
	"fmt"
	"time"

	"docurequest/internal/utils"
	"docurequest/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestTableName = "docurequest.document_requests"

var requestColumns = utils.StructTagValues(types.DocumentRequest{})

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Request(ctx context.Context, requestID string) (*types.DocumentRequest, error) {

	query, args, err := psql().Select(requestColumns...).From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var request = new(types.DocumentRequest)
	err = pgxscan.Get(ctx, r.pool, request, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrRequestNotFound
	}

	return request, nil
}

// CreateRequest inserts a submitted request. ID and SubmittedAt are set by the caller.
func (r *RequestRepository) CreateRequest(ctx context.Context, request *types.DocumentRequest) error {

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	query, args, err := psql().Insert(requestTableName).SetMap(utils.StructToMap(request)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert request query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create request")

}

// UpdateStatus moves a request to a new status and returns
// types.ErrRequestNotFound when no row matched.
func (r *RequestRepository) UpdateStatus(ctx context.Context, requestID string, status types.RequestStatusKind, notes string) error {

	query, args, err := psql().Update(requestTableName).
		SetMap(map[string]any{
			"status":     status,
			"notes":      utils.NilIfEmpty(notes),
			"updated_at": time.Now(),
		}).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update status query for request %s: %w", requestID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrRequestNotFound
	}

	return nil

}
