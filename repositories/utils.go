package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/navikt/isdialogmote-sub002/pure_utils"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// columnsNames prefixes the columns with the table name or alias.
func columnsNames(tablename string, fields []string) []string {
	return pure_utils.Map(fields, func(f string) string {
		return fmt.Sprintf("%s.%s", tablename, f)
	})
}

// incrementAttempts counts a failed attempt of a job on a row. The jobs list the rows with the fewest
// attempts first.
func incrementAttempts(ctx context.Context, tx Transaction, table string, column string, id int64) error {
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(table).
		Set(column, squirrel.Expr(column+" + 1")).
		Where(squirrel.Eq{"id": id}))
	return err
}
