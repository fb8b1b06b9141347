package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/dbmodels"
)

func (repo *DbRepository) ListReferater(ctx context.Context, exec Executor, dialogmoteId int64) ([]models.Referat, error) {
	return SqlToListOfModels(ctx, exec, NewQueryBuilder().
		Select(dbmodels.ReferatFields...).
		From(dbmodels.TABLE_REFERAT).
		Where(squirrel.Eq{"mote_id": dialogmoteId}).
		OrderBy("created_at", "id"),
		dbmodels.AdaptReferat)
}

func (repo *DbRepository) CreateReferat(ctx context.Context, tx Transaction, input models.ReferatCreate) error {
	andreDeltakere, err := dbmodels.MarshalAndreDeltakere(input.Andredeltakere)
	if err != nil {
		return err
	}
	document, err := dbmodels.MarshalDocument(input.DocumentComponents)
	if err != nil {
		return err
	}

	_, err = ExecBuilder(ctx, tx, NewQueryBuilder().
		Insert(dbmodels.TABLE_REFERAT).
		Columns(
			"uuid",
			"mote_id",
			"opprettet_av",
			"situasjon",
			"konklusjon",
			"arbeidstaker_oppgave",
			"arbeidsgiver_oppgave",
			"behandler_oppgave",
			"narmeste_leder_navn",
			"andre_deltakere",
			"document",
			"pdf_id",
			"ferdigstilt",
			"endring",
			"begrunnelse",
		).
		Values(
			input.Uuid,
			input.DialogmoteId,
			input.CreatedBy,
			input.Situasjon,
			input.Konklusjon,
			input.ArbeidstakerOppgave,
			input.ArbeidsgiverOppgave,
			input.BehandlerOppgave.Ptr(),
			input.NarmesteLederNavn,
			andreDeltakere,
			document,
			input.PdfId,
			input.Ferdigstilt,
			input.Endring,
			input.Begrunnelse.Ptr(),
		))
	return classifyWriteError(err, "could not create referat")
}

// UpdateReferat overwrites a draft referat. A ferdigstilt referat is never updated.
func (repo *DbRepository) UpdateReferat(ctx context.Context, tx Transaction, referatId int64, input models.ReferatCreate) error {
	andreDeltakere, err := dbmodels.MarshalAndreDeltakere(input.Andredeltakere)
	if err != nil {
		return err
	}
	document, err := dbmodels.MarshalDocument(input.DocumentComponents)
	if err != nil {
		return err
	}

	rows, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.TABLE_REFERAT).
		SetMap(map[string]any{
			"situasjon":            input.Situasjon,
			"konklusjon":           input.Konklusjon,
			"arbeidstaker_oppgave": input.ArbeidstakerOppgave,
			"arbeidsgiver_oppgave": input.ArbeidsgiverOppgave,
			"behandler_oppgave":    input.BehandlerOppgave.Ptr(),
			"narmeste_leder_navn":  input.NarmesteLederNavn,
			"andre_deltakere":      andreDeltakere,
			"document":             document,
			"pdf_id":               input.PdfId,
			"ferdigstilt":          input.Ferdigstilt,
			"updated_at":           squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": referatId}).
		Where(squirrel.Eq{"ferdigstilt": false}))
	if err != nil {
		return classifyWriteError(err, "could not update referat")
	}
	if rows == 0 {
		return errors.Wrapf(models.ConflictError, "referat %d is ferdigstilt", referatId)
	}
	return nil
}

func (repo *DbRepository) ListReferaterToJournalfor(ctx context.Context, exec Executor, limit int) ([]models.ReferatJournalforing, error) {
	return SqlToListOfModels(ctx, exec, NewQueryBuilder().
		Select(
			"r.id", "r.uuid", "r.created_at", "r.pdf_id", "r.endring",
			"m.uuid AS dialogmote_uuid", "a.personident",
		).
		From(dbmodels.TABLE_REFERAT+" AS r").
		Join(dbmodels.TABLE_DIALOGMOTE+" AS m ON m.id = r.mote_id").
		Join(dbmodels.TABLE_ARBEIDSTAKER+" AS a ON a.mote_id = m.id").
		Where(squirrel.Eq{"r.journalpost_id": nil}).
		Where(squirrel.Eq{"r.ferdigstilt": true}).
		OrderBy("r.journalforing_attempts", "r.created_at", "r.id").
		Limit(uint64(limit)),
		dbmodels.AdaptReferatJournalforing)
}

func (repo *DbRepository) SetReferatJournalpostId(ctx context.Context, tx Transaction, referatId int64, journalpostId int) error {
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.TABLE_REFERAT).
		Set("journalpost_id", journalpostId).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": referatId}).
		Where(squirrel.Eq{"journalpost_id": nil}))
	return err
}

func (repo *DbRepository) IncrementReferatJournalforingAttempts(ctx context.Context, tx Transaction, referatId int64) error {
	return incrementAttempts(ctx, tx, dbmodels.TABLE_REFERAT, "journalforing_attempts", referatId)
}
