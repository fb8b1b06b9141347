package repositories

import (
	"context"
	"fmt"
	"reflect"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/navikt/isdialogmote-sub002/models"
)

func SqlToListOfRow[Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(row pgx.CollectableRow) (Model, error),
) ([]Model, error) {
	models := make([]Model, 0)
	err := ForEachRow(ctx, exec, query, func(row pgx.CollectableRow) error {
		model, err := adapter(row)
		if err == nil {
			models = append(models, model)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return models, nil
}

func SqlToOptionalRow[Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(row pgx.CollectableRow) (Model, error),
) (*Model, error) {
	models, err := SqlToListOfRow(ctx, exec, query, adapter)
	if err != nil {
		return nil, err
	}

	numberOfResults := len(models)
	if numberOfResults == 0 {
		return nil, nil
	}

	model := models[0]
	if numberOfResults > 1 {
		return nil, errors.Newf("expected 1 or 0 %v, %d rows in the result", reflect.TypeOf(model), numberOfResults)
	}
	return &model, nil
}

func SqlToRow[Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(row pgx.CollectableRow) (Model, error),
) (Model, error) {
	model, err := SqlToOptionalRow(ctx, exec, query, adapter)
	var zeroModel Model
	if err != nil {
		return zeroModel, err
	}
	if model == nil {
		return zeroModel, errors.Wrap(models.NotFoundError, fmt.Sprintf("found no object of type %T", zeroModel))
	}
	return *model, nil
}

func ForEachRow(ctx context.Context, exec Executor, query squirrel.Sqlizer, fn func(row pgx.CollectableRow) error) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return errors.Wrapf(err, "error executing sql query: %s", sql)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}

	return errors.Wrap(rows.Err(), "error iterating over rows")
}

// ExecBuilder runs a statement and returns the number of affected rows.
func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	tag, err := exec.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "error executing sql query: %s", query)
	}
	return tag.RowsAffected(), nil
}

// InsertReturningId runs an INSERT ... RETURNING id.
func InsertReturningId(ctx context.Context, exec Executor, builder squirrel.InsertBuilder) (int64, error) {
	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "can't build sql query")
	}

	var id int64
	if err := exec.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, errors.Wrapf(err, "error executing sql query: %s", query)
	}
	return id, nil
}
