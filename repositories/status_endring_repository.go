package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/dbmodels"
)

func (repo *DbRepository) CreateStatusEndring(ctx context.Context, tx Transaction, input models.StatusEndringCreate) error {
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Insert(dbmodels.TABLE_STATUS_ENDRING).
		Columns("uuid", "mote_id", "status", "opprettet_av", "tilfelle_start").
		Values(input.Uuid, input.DialogmoteId, input.Status, input.CreatedBy, input.TilfelleStart.Ptr()))
	return classifyWriteError(err, "could not create status endring")
}

func (repo *DbRepository) ListStatusEndringer(ctx context.Context, exec Executor, dialogmoteId int64) ([]models.DialogmoteStatusEndring, error) {
	return SqlToListOfModels(ctx, exec, NewQueryBuilder().
		Select(dbmodels.StatusEndringFields...).
		From(dbmodels.TABLE_STATUS_ENDRING).
		Where(squirrel.Eq{"mote_id": dialogmoteId}).
		OrderBy("created_at", "id"),
		dbmodels.AdaptStatusEndring)
}

// ListUnpublishedStatusEndringer lists the unpublished status endringer with the tid of the dialogmote at the
// time of the endring. The endringer of a dialogmote keep their order, and dialogmoter are ranked by the
// publish attempts of their oldest unpublished endring.
func (repo *DbRepository) ListUnpublishedStatusEndringer(ctx context.Context, exec Executor, limit int) ([]models.StatusEndringToPublish, error) {
	columns := append(
		columnsNames("s", dbmodels.StatusEndringFields),
		"m.uuid AS dialogmote_uuid",
		"t.tid AS dialogmote_tid",
		"a.personident",
		"ag.virksomhetsnummer",
		"m.tildelt_enhet",
		"EXISTS (SELECT 1 FROM "+dbmodels.TABLE_BEHANDLER+" b WHERE b.mote_id = m.id) AS has_behandler",
	)

	return SqlToListOfModels(ctx, exec, NewQueryBuilder().
		Select(columns...).
		From(dbmodels.TABLE_STATUS_ENDRING+" AS s").
		Join(dbmodels.TABLE_DIALOGMOTE+" AS m ON m.id = s.mote_id").
		Join(dbmodels.TABLE_ARBEIDSTAKER+" AS a ON a.mote_id = m.id").
		Join(dbmodels.TABLE_ARBEIDSGIVER+" AS ag ON ag.mote_id = m.id").
		JoinClause("LEFT JOIN LATERAL (SELECT tid FROM "+dbmodels.TABLE_TID_STED+
			" WHERE mote_id = m.id AND created_at <= s.created_at ORDER BY created_at DESC, id DESC LIMIT 1) AS t ON TRUE").
		JoinClause("JOIN LATERAL (SELECT publish_attempts FROM "+dbmodels.TABLE_STATUS_ENDRING+
			" WHERE mote_id = s.mote_id AND published_at IS NULL ORDER BY created_at, id LIMIT 1) AS h ON TRUE").
		Where(squirrel.Eq{"s.published_at": nil}).
		OrderBy("h.publish_attempts", "s.created_at", "s.id").
		Limit(uint64(limit)),
		dbmodels.AdaptStatusEndringToPublish)
}

func (repo *DbRepository) MarkStatusEndringPublished(ctx context.Context, tx Transaction, statusEndringId int64, publishedAt time.Time) error {
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.TABLE_STATUS_ENDRING).
		Set("published_at", publishedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": statusEndringId}).
		Where(squirrel.Eq{"published_at": nil}))
	return err
}

func (repo *DbRepository) IncrementStatusEndringPublishAttempts(ctx context.Context, tx Transaction, statusEndringId int64) error {
	return incrementAttempts(ctx, tx, dbmodels.TABLE_STATUS_ENDRING, "publish_attempts", statusEndringId)
}
