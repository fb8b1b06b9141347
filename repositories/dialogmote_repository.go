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

// DbRepository holds every query of the dialogmote database.
type DbRepository struct{}

func NewDbRepository() *DbRepository {
	return &DbRepository{}
}

func selectDialogmoter() squirrel.SelectBuilder {
	return NewQueryBuilder().
		Select(columnsNames("m", dbmodels.DialogmoteFields)...).
		From(dbmodels.TABLE_DIALOGMOTE + " AS m")
}

func (repo *DbRepository) CreateDialogmote(
	ctx context.Context,
	tx Transaction,
	input models.DialogmoteCreate,
) (models.DialogmoteIdentity, error) {
	dialogmoteId, err := InsertReturningId(ctx, tx, NewQueryBuilder().
		Insert(dbmodels.TABLE_DIALOGMOTE).
		Columns("uuid", "status", "opprettet_av", "tildelt_veileder_ident", "tildelt_enhet").
		Values(input.Uuid, input.Status, input.CreatedBy, input.TildeltVeilederIdent, input.TildeltEnhet))
	if err != nil {
		return models.DialogmoteIdentity{}, classifyWriteError(err, "could not create dialogmote")
	}

	_, err = ExecBuilder(ctx, tx, NewQueryBuilder().
		Insert(dbmodels.TABLE_ARBEIDSTAKER).
		Columns("uuid", "mote_id", "personident").
		Values(uuid.New(), dialogmoteId, input.Arbeidstaker.Personident))
	if err != nil {
		return models.DialogmoteIdentity{}, classifyWriteError(err, "could not create arbeidstaker")
	}

	_, err = ExecBuilder(ctx, tx, NewQueryBuilder().
		Insert(dbmodels.TABLE_ARBEIDSGIVER).
		Columns("uuid", "mote_id", "virksomhetsnummer", "leder_navn", "leder_epost").
		Values(uuid.New(), dialogmoteId, input.Arbeidsgiver.Virksomhetsnummer,
			input.Arbeidsgiver.LederNavn.Ptr(), input.Arbeidsgiver.LederEpost.Ptr()))
	if err != nil {
		return models.DialogmoteIdentity{}, classifyWriteError(err, "could not create arbeidsgiver")
	}

	if b := input.Behandler; b != nil {
		_, err = ExecBuilder(ctx, tx, NewQueryBuilder().
			Insert(dbmodels.TABLE_BEHANDLER).
			Columns("uuid", "mote_id", "behandler_ref", "behandler_navn", "behandler_kontor",
				"behandler_type", "personident", "mottar_referat").
			Values(uuid.New(), dialogmoteId, b.BehandlerRef, b.BehandlerNavn, b.BehandlerKontor,
				b.BehandlerType, b.Personident.Ptr(), b.MottarReferat))
		if err != nil {
			return models.DialogmoteIdentity{}, classifyWriteError(err, "could not create behandler")
		}
	}

	if err := repo.CreateTidSted(ctx, tx, dialogmoteId, input.TidSted); err != nil {
		return models.DialogmoteIdentity{}, err
	}

	return models.DialogmoteIdentity{Id: dialogmoteId, Uuid: input.Uuid}, nil
}

func (repo *DbRepository) GetDialogmote(ctx context.Context, exec Executor, dialogmoteUuid uuid.UUID) (models.Dialogmote, error) {
	dialogmote, err := SqlToModel(ctx, exec,
		selectDialogmoter().Where(squirrel.Eq{"m.uuid": dialogmoteUuid}),
		dbmodels.AdaptDialogmote)
	if err != nil {
		return models.Dialogmote{}, err
	}
	return repo.loadAggregate(ctx, exec, dialogmote)
}

// GetDialogmoteForUpdate locks the dialogmote row until the end of the transaction, so that status
// transitions of one dialogmote are applied one after the other.
func (repo *DbRepository) GetDialogmoteForUpdate(ctx context.Context, tx Transaction, dialogmoteUuid uuid.UUID) (models.Dialogmote, error) {
	dialogmote, err := SqlToModel(ctx, tx,
		selectDialogmoter().Where(squirrel.Eq{"m.uuid": dialogmoteUuid}).Suffix("FOR UPDATE"),
		dbmodels.AdaptDialogmote)
	if err != nil {
		return models.Dialogmote{}, err
	}
	return repo.loadAggregate(ctx, tx, dialogmote)
}

func (repo *DbRepository) ListDialogmoterForPersonident(ctx context.Context, exec Executor, personident string) ([]models.Dialogmote, error) {
	dialogmoter, err := SqlToListOfModels(ctx, exec,
		selectDialogmoter().
			Join(dbmodels.TABLE_ARBEIDSTAKER+" AS a ON a.mote_id = m.id").
			Where(squirrel.Eq{"a.personident": personident}).
			OrderBy("m.created_at DESC"),
		dbmodels.AdaptDialogmote)
	if err != nil {
		return nil, err
	}
	return repo.loadAggregates(ctx, exec, dialogmoter)
}

func (repo *DbRepository) ListDialogmoterForVirksomhet(ctx context.Context, exec Executor, virksomhetsnummer string) ([]models.Dialogmote, error) {
	dialogmoter, err := SqlToListOfModels(ctx, exec,
		selectDialogmoter().
			Join(dbmodels.TABLE_ARBEIDSGIVER+" AS ag ON ag.mote_id = m.id").
			Where(squirrel.Eq{"ag.virksomhetsnummer": virksomhetsnummer}).
			OrderBy("m.created_at DESC"),
		dbmodels.AdaptDialogmote)
	if err != nil {
		return nil, err
	}
	return repo.loadAggregates(ctx, exec, dialogmoter)
}

func (repo *DbRepository) UpdateDialogmoteStatus(ctx context.Context, tx Transaction, dialogmoteId int64, status models.DialogmoteStatus) error {
	rows, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.TABLE_DIALOGMOTE).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": dialogmoteId}))
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.Wrapf(models.NotFoundError, "dialogmote %d", dialogmoteId)
	}
	return nil
}

func (repo *DbRepository) UpdateTildeltVeileder(ctx context.Context, tx Transaction, dialogmoteId int64, veilederIdent string) error {
	rows, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.TABLE_DIALOGMOTE).
		Set("tildelt_veileder_ident", veilederIdent).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": dialogmoteId}))
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.Wrapf(models.NotFoundError, "dialogmote %d", dialogmoteId)
	}
	return nil
}

func (repo *DbRepository) UpdateBehandlerReferatFlags(ctx context.Context, tx Transaction, behandlerId int64, deltatt, mottarReferat bool) error {
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Update(dbmodels.TABLE_BEHANDLER).
		Set("deltatt", deltatt).
		Set("mottar_referat", mottarReferat).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": behandlerId}))
	return err
}

func (repo *DbRepository) CreateTidSted(ctx context.Context, tx Transaction, dialogmoteId int64, tidSted models.NewTidSted) error {
	var videolink *string
	if tidSted.Videolink != "" {
		videolink = &tidSted.Videolink
	}
	_, err := ExecBuilder(ctx, tx, NewQueryBuilder().
		Insert(dbmodels.TABLE_TID_STED).
		Columns("uuid", "mote_id", "sted", "tid", "videolink").
		Values(uuid.New(), dialogmoteId, tidSted.Sted, tidSted.Tid, videolink))
	return classifyWriteError(err, "could not create tid and sted")
}

// ListOutdatedDialogmoter lists the open dialogmoter whose current tid is before the cutoff. The dialogmoter
// the sweeper failed to close the most come last.
func (repo *DbRepository) ListOutdatedDialogmoter(ctx context.Context, exec Executor, cutoff time.Time, limit int) ([]models.OutdatedDialogmote, error) {
	query := NewQueryBuilder().
		Select("m.id", "m.uuid", "m.status", "t.tid").
		From(dbmodels.TABLE_DIALOGMOTE + " AS m").
		JoinClause("JOIN LATERAL (SELECT tid FROM " + dbmodels.TABLE_TID_STED +
			" WHERE mote_id = m.id ORDER BY created_at DESC, id DESC LIMIT 1) AS t ON TRUE").
		Where(squirrel.Eq{"m.status": models.OpenDialogmoteStatuses.Slice()}).
		Where(squirrel.Lt{"t.tid": cutoff}).
		OrderBy("m.sweep_attempts", "t.tid", "m.id").
		Limit(uint64(limit))

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptOutdatedDialogmote)
}

func (repo *DbRepository) IncrementSweepAttempts(ctx context.Context, tx Transaction, dialogmoteId int64) error {
	return incrementAttempts(ctx, tx, dbmodels.TABLE_DIALOGMOTE, "sweep_attempts", dialogmoteId)
}

func (repo *DbRepository) loadAggregates(ctx context.Context, exec Executor, dialogmoter []models.Dialogmote) ([]models.Dialogmote, error) {
	result := make([]models.Dialogmote, 0, len(dialogmoter))
	for _, dialogmote := range dialogmoter {
		loaded, err := repo.loadAggregate(ctx, exec, dialogmote)
		if err != nil {
			return nil, err
		}
		result = append(result, loaded)
	}
	return result, nil
}

func (repo *DbRepository) loadAggregate(ctx context.Context, exec Executor, dialogmote models.Dialogmote) (models.Dialogmote, error) {
	arbeidstaker, err := SqlToOptionalModel(ctx, exec, NewQueryBuilder().
		Select(dbmodels.ArbeidstakerFields...).
		From(dbmodels.TABLE_ARBEIDSTAKER).
		Where(squirrel.Eq{"mote_id": dialogmote.Id}),
		dbmodels.AdaptArbeidstaker)
	if err != nil {
		return models.Dialogmote{}, err
	}
	if arbeidstaker == nil {
		return models.Dialogmote{}, errors.Wrapf(models.ErrMissingArbeidstaker, "dialogmote %s", dialogmote.Uuid)
	}

	arbeidsgiver, err := SqlToOptionalModel(ctx, exec, NewQueryBuilder().
		Select(dbmodels.ArbeidsgiverFields...).
		From(dbmodels.TABLE_ARBEIDSGIVER).
		Where(squirrel.Eq{"mote_id": dialogmote.Id}),
		dbmodels.AdaptArbeidsgiver)
	if err != nil {
		return models.Dialogmote{}, err
	}
	if arbeidsgiver == nil {
		return models.Dialogmote{}, errors.Wrapf(models.ErrMissingArbeidsgiver, "dialogmote %s", dialogmote.Uuid)
	}

	behandler, err := SqlToOptionalModel(ctx, exec, NewQueryBuilder().
		Select(dbmodels.BehandlerFields...).
		From(dbmodels.TABLE_BEHANDLER).
		Where(squirrel.Eq{"mote_id": dialogmote.Id}),
		dbmodels.AdaptBehandler)
	if err != nil {
		return models.Dialogmote{}, err
	}

	if arbeidstaker.Varsler, err = repo.ListVarsler(ctx, exec, models.ParticipantTypeArbeidstaker, arbeidstaker.Id); err != nil {
		return models.Dialogmote{}, err
	}
	if arbeidsgiver.Varsler, err = repo.ListVarsler(ctx, exec, models.ParticipantTypeArbeidsgiver, arbeidsgiver.Id); err != nil {
		return models.Dialogmote{}, err
	}
	if behandler != nil {
		if behandler.Varsler, err = repo.ListVarsler(ctx, exec, models.ParticipantTypeBehandler, behandler.Id); err != nil {
			return models.Dialogmote{}, err
		}
	}

	tidSteder, err := SqlToListOfModels(ctx, exec, NewQueryBuilder().
		Select(dbmodels.TidStedFields...).
		From(dbmodels.TABLE_TID_STED).
		Where(squirrel.Eq{"mote_id": dialogmote.Id}).
		OrderBy("created_at", "id"),
		dbmodels.AdaptTidSted)
	if err != nil {
		return models.Dialogmote{}, err
	}

	referater, err := repo.ListReferater(ctx, exec, dialogmote.Id)
	if err != nil {
		return models.Dialogmote{}, err
	}

	dialogmote.Arbeidstaker = *arbeidstaker
	dialogmote.Arbeidsgiver = *arbeidsgiver
	dialogmote.Behandler = behandler
	dialogmote.TidStedHistory = tidSteder
	dialogmote.Referater = referater
	return dialogmote, nil
}
