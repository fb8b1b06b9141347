package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/dbmodels"
)

func selectVarsler(participantType models.ParticipantType) squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(dbmodels.VarselFields...).
		From(dbmodels.VarselTable(participantType))
}

// selectVarselContext joins a varsel with its motedeltaker, the dialogmote and the arbeidstaker and arbeidsgiver of the dialogmote.
func selectVarselContext(participantType models.ParticipantType) squirrel.SelectBuilder {
	behandlerColumns := []string{"NULL::text AS behandler_ref", "NULL::text AS behandler_navn"}
	if participantType == models.ParticipantTypeBehandler {
		behandlerColumns = []string{"d.behandler_ref", "d.behandler_navn"}
	}
	columns := append([]string{
		"v.id", "v.uuid", "v.created_at", "v.varseltype", "v.pdf_id", "v.fritekst", "v.kanal",
		"m.uuid AS dialogmote_uuid", "a.personident", "ag.virksomhetsnummer",
	}, behandlerColumns...)

	return NewQueryBuilder().
		Select(columns...).
		From(dbmodels.VarselTable(participantType) + " AS v").
		Join(dbmodels.ParticipantTable(participantType) + " AS d ON d.id = v.motedeltaker_id").
		Join(dbmodels.TABLE_DIALOGMOTE + " AS m ON m.id = d.mote_id").
		Join(dbmodels.TABLE_ARBEIDSTAKER + " AS a ON a.mote_id = m.id").
		Join(dbmodels.TABLE_ARBEIDSGIVER + " AS ag ON ag.mote_id = m.id")
}

func (repo *DbRepository) CreateVarsel(ctx context.Context, tx Transaction, input models.VarselCreate) (models.Varsel, error) {
	document, err := dbmodels.MarshalDocument(input.DocumentComponents)
	if err != nil {
		return models.Varsel{}, err
	}

	_, err = ExecBuilder(ctx, tx, NewQueryBuilder().
		Insert(dbmodels.VarselTable(input.ParticipantType)).
		Columns("uuid", "motedeltaker_id", "varseltype", "pdf_id", "fritekst", "document", "kanal").
		Values(input.Uuid, input.ParticipantId, input.Type, input.PdfId, input.Fritekst, document, input.Channel))
	if err != nil {
		return models.Varsel{}, classifyWriteError(err, "could not create varsel")
	}

	return repo.GetVarsel(ctx, tx, input.ParticipantType, input.Uuid)
}

func (repo *DbRepository) GetVarsel(
	ctx context.Context,
	exec Executor,
	participantType models.ParticipantType,
	varselUuid uuid.UUID,
) (models.Varsel, error) {
	return SqlToModel(ctx, exec,
		selectVarsler(participantType).Where(squirrel.Eq{"uuid": varselUuid}),
		dbmodels.AdaptVarsel(participantType))
}

func (repo *DbRepository) ListVarsler(
	ctx context.Context,
	exec Executor,
	participantType models.ParticipantType,
	participantId int64,
) ([]models.Varsel, error) {
	return SqlToListOfModels(ctx, exec,
		selectVarsler(participantType).
			Where(squirrel.Eq{"motedeltaker_id": participantId}).
			OrderBy("created_at", "id"),
		dbmodels.AdaptVarsel(participantType))
}

// MarkVarselRead sets the lest dato of the varsel if it was never set.
func (repo *DbRepository) MarkVarselRead(
	ctx context.Context,
	tx Transaction,
	participantType models.ParticipantType,
	varselUuid uuid.UUID,
	lestDato time.Time,
) error {
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.VarselTable(participantType)).
		Set("lest_dato", lestDato).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"uuid": varselUuid}).
		Where(squirrel.Eq{"lest_dato": nil}))
	return err
}

// SetVarselSvar sets the svar of the varsel. It fails with a conflict if the varsel was already answered.
func (repo *DbRepository) SetVarselSvar(
	ctx context.Context,
	tx Transaction,
	participantType models.ParticipantType,
	varselUuid uuid.UUID,
	svar models.Svar,
) error {
	rows, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.VarselTable(participantType)).
		Set("svar_type", svar.Type).
		Set("svar_tekst", svar.Tekst).
		Set("svar_tidspunkt", svar.Tidspunkt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"uuid": varselUuid}).
		Where(squirrel.Eq{"svar_type": nil}))
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.Wrapf(models.ErrVarselAlreadyAnswered, "varsel %s", varselUuid)
	}
	return nil
}

// ListVarslerToJournalfor lists the varsler without journalpost, the ones with the fewest failed attempts first.
func (repo *DbRepository) ListVarslerToJournalfor(
	ctx context.Context,
	exec Executor,
	participantType models.ParticipantType,
	limit int,
) ([]models.VarselJournalforing, error) {
	return SqlToListOfModels(ctx, exec,
		selectVarselContext(participantType).
			Where(squirrel.Eq{"v.journalpost_id": nil}).
			OrderBy("v.journalforing_attempts", "v.created_at", "v.id").
			Limit(uint64(limit)),
		dbmodels.AdaptVarselJournalforing(participantType))
}

// SetVarselJournalpostId only writes the journalpost id once. A second write is a no-op.
func (repo *DbRepository) SetVarselJournalpostId(
	ctx context.Context,
	tx Transaction,
	participantType models.ParticipantType,
	varselId int64,
	journalpostId int,
) error {
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.VarselTable(participantType)).
		Set("journalpost_id", journalpostId).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": varselId}).
		Where(squirrel.Eq{"journalpost_id": nil}))
	return err
}

// ListUndeliveredVarsler lists the undelivered varsler created before the grace period, the ones with the
// fewest failed attempts first.
func (repo *DbRepository) ListUndeliveredVarsler(
	ctx context.Context,
	exec Executor,
	participantType models.ParticipantType,
	createdBefore time.Time,
	limit int,
) ([]models.VarselDelivery, error) {
	return SqlToListOfModels(ctx, exec,
		selectVarselContext(participantType).
			Where(squirrel.Eq{"v.delivered_at": nil}).
			Where(squirrel.Lt{"v.created_at": createdBefore}).
			OrderBy("v.delivery_attempts", "v.created_at", "v.id").
			Limit(uint64(limit)),
		dbmodels.AdaptVarselDelivery(participantType))
}

func (repo *DbRepository) MarkVarselDelivered(
	ctx context.Context,
	tx Transaction,
	participantType models.ParticipantType,
	varselId int64,
	deliveredAt time.Time,
) error {
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.VarselTable(participantType)).
		Set("delivered_at", deliveredAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": varselId}).
		Where(squirrel.Eq{"delivered_at": nil}))
	return err
}

func (repo *DbRepository) IncrementVarselJournalforingAttempts(
	ctx context.Context,
	tx Transaction,
	participantType models.ParticipantType,
	varselId int64,
) error {
	return incrementAttempts(ctx, tx, dbmodels.VarselTable(participantType), "journalforing_attempts", varselId)
}

func (repo *DbRepository) IncrementVarselDeliveryAttempts(
	ctx context.Context,
	tx Transaction,
	participantType models.ParticipantType,
	varselId int64,
) error {
	return incrementAttempts(ctx, tx, dbmodels.VarselTable(participantType), "delivery_attempts", varselId)
}
