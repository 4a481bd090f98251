package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// recencyRepo implements RecencyRepo as an ordered table of task ids.
type recencyRepo struct {
	drv *entsql.Driver
}

func (r *recencyRepo) Load(ctx context.Context) ([]string, error) {
	query, args := sqlite.Select("task_id").
		From(entsql.Table(tableRecentTasks)).
		OrderBy("position").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query recent tasks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan recent task: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *recencyRepo) Save(ctx context.Context, ids []string) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin save recent tasks: %w", err)
	}

	query, args := sqlite.Delete(tableRecentTasks).Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear recent tasks: %w", err)
	}

	if len(ids) > 0 {
		insert := sqlite.Insert(tableRecentTasks).Columns("position", "task_id")
		for i, id := range ids {
			insert.Values(i, id)
		}
		query, args := insert.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert recent tasks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recent tasks: %w", err)
	}
	return nil
}
