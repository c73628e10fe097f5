package tables

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores every collection in two tables: table_collections holds
// the header, table_rows holds positional cells in insertion order.
type Postgres struct {
	DB *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) EnsureCollection(ctx context.Context, name string, header []string) error {
	_, err := p.DB.Exec(ctx, `
    INSERT INTO table_collections (name, header)
    VALUES ($1, $2)
    ON CONFLICT (name) DO NOTHING
  `, name, header)
	return wrap("ensure", name, err)
}

func (p *Postgres) GetAllRows(ctx context.Context, collection string) (Table, error) {
	header, ok, err := p.header(ctx, p.DB, collection)
	if err != nil {
		return Table{}, wrap("read", collection, err)
	}
	if !ok {
		return Table{}, nil
	}

	rows, err := p.DB.Query(ctx, `
    SELECT cells
    FROM table_rows
    WHERE collection = $1
    ORDER BY id
  `, collection)
	if err != nil {
		return Table{}, wrap("read", collection, err)
	}
	defer rows.Close()

	var cells [][]string
	for rows.Next() {
		var values []string
		if err := rows.Scan(&values); err != nil {
			return Table{}, wrap("read", collection, err)
		}
		cells = append(cells, values)
	}
	if err := rows.Err(); err != nil {
		return Table{}, wrap("read", collection, err)
	}
	return buildTable(header, cells), nil
}

func (p *Postgres) AppendRow(ctx context.Context, collection string, values []string) error {
	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrap("append", collection, err)
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO table_collections (name, header)
    VALUES ($1, '{}')
    ON CONFLICT (name) DO NOTHING
  `, collection); err != nil {
		_ = tx.Rollback(ctx)
		return wrap("append", collection, err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO table_rows (collection, cells) VALUES ($1, $2)", collection, values); err != nil {
		_ = tx.Rollback(ctx)
		return wrap("append", collection, err)
	}
	return wrap("append", collection, tx.Commit(ctx))
}

func (p *Postgres) FindRow(ctx context.Context, collection, column, key string) (RowHandle, bool, error) {
	header, ok, err := p.header(ctx, p.DB, collection)
	if err != nil {
		return RowHandle{}, false, wrap("find", collection, err)
	}
	idx := columnIndex(header, column)
	if !ok || idx < 0 {
		return RowHandle{}, false, nil
	}

	var id int64
	err = p.DB.QueryRow(ctx, `
    SELECT id
    FROM table_rows
    WHERE collection = $1 AND btrim(cells[$2]) = btrim($3)
    ORDER BY id
    LIMIT 1
  `, collection, idx+1, key).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return RowHandle{}, false, nil
	}
	if err != nil {
		return RowHandle{}, false, wrap("find", collection, err)
	}
	return RowHandle{Collection: collection, Ref: id}, true, nil
}

func (p *Postgres) DeleteRow(ctx context.Context, handle RowHandle) error {
	tag, err := p.DB.Exec(ctx, "DELETE FROM table_rows WHERE collection = $1 AND id = $2", handle.Collection, handle.Ref)
	if err != nil {
		return wrap("delete", handle.Collection, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

func (p *Postgres) ReplaceRows(ctx context.Context, collection string, header []string, rows [][]string) error {
	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrap("replace", collection, err)
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO table_collections (name, header)
    VALUES ($1, $2)
    ON CONFLICT (name) DO UPDATE SET header = EXCLUDED.header
  `, collection, header); err != nil {
		_ = tx.Rollback(ctx)
		return wrap("replace", collection, err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM table_rows WHERE collection = $1", collection); err != nil {
		_ = tx.Rollback(ctx)
		return wrap("replace", collection, err)
	}

	source := make([][]any, 0, len(rows))
	for _, values := range rows {
		source = append(source, []any{collection, values})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"table_rows"}, []string{"collection", "cells"}, pgx.CopyFromRows(source)); err != nil {
		_ = tx.Rollback(ctx)
		return wrap("replace", collection, err)
	}
	return wrap("replace", collection, tx.Commit(ctx))
}

func (p *Postgres) Ping(ctx context.Context) error {
	return wrap("ping", "", p.DB.Ping(ctx))
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (p *Postgres) header(ctx context.Context, q queryRower, collection string) ([]string, bool, error) {
	var header []string
	err := q.QueryRow(ctx, "SELECT header FROM table_collections WHERE name = $1", collection).Scan(&header)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return header, true, nil
}
