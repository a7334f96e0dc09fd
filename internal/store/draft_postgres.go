package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docurequest/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const draftTableName = "docurequest.request_drafts"

type DraftRepository struct {
	pool *pgxpool.Pool
}

func NewDraftRepository(pool *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{pool: pool}
}

func (r *DraftRepository) Load(ctx context.Context, key string) (*types.RequestState, error) {
	query, args, err := psql().
		Select("state").
		From(draftTableName).
		Where(sq.Eq{"draft_key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate draft query: %w", err)
	}

	var data []byte
	err = pgxscan.Get(ctx, r.pool, &data, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to fetch draft: %w", err)
	}

	return decodeDraft(data)
}

func (r *DraftRepository) Save(ctx context.Context, key string, state *types.RequestState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	query, args, err := psql().
		Insert(draftTableName).
		SetMap(map[string]any{
			"draft_key":  key,
			"state":      data,
			"updated_at": time.Now(),
		}).
		Suffix("ON CONFLICT (draft_key) DO UPDATE SET " + buildUpdateClause([]string{"state", "updated_at"})).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate draft upsert query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}

	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, key string) error {
	query, args, err := psql().
		Delete(draftTableName).
		Where(sq.Eq{"draft_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate draft delete query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	return nil
}
