package dbmodels

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/utils"
)

type DBDialogmote struct {
	Id                   int64     `db:"id"`
	Uuid                 uuid.UUID `db:"uuid"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
	Status               string    `db:"status"`
	OpprettetAv          string    `db:"opprettet_av"`
	TildeltVeilederIdent string    `db:"tildelt_veileder_ident"`
	TildeltEnhet         string    `db:"tildelt_enhet"`
}

const TABLE_DIALOGMOTE = "mote"

var DialogmoteFields = utils.ColumnList[DBDialogmote]()

func AdaptDialogmote(db DBDialogmote) (models.Dialogmote, error) {
	return models.Dialogmote{
		Id:                   db.Id,
		Uuid:                 db.Uuid,
		Status:               models.DialogmoteStatusFrom(db.Status),
		CreatedAt:            db.CreatedAt,
		UpdatedAt:            db.UpdatedAt,
		CreatedBy:            db.OpprettetAv,
		TildeltVeilederIdent: db.TildeltVeilederIdent,
		TildeltEnhet:         db.TildeltEnhet,
	}, nil
}

type DBArbeidstaker struct {
	Id          int64     `db:"id"`
	Uuid        uuid.UUID `db:"uuid"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	MoteId      int64     `db:"mote_id"`
	Personident string    `db:"personident"`
}

const TABLE_ARBEIDSTAKER = "motedeltaker_arbeidstaker"

var ArbeidstakerFields = utils.ColumnList[DBArbeidstaker]()

func AdaptArbeidstaker(db DBArbeidstaker) (models.Arbeidstaker, error) {
	return models.Arbeidstaker{
		Id:           db.Id,
		Uuid:         db.Uuid,
		DialogmoteId: db.MoteId,
		Personident:  db.Personident,
	}, nil
}

type DBArbeidsgiver struct {
	Id                int64       `db:"id"`
	Uuid              uuid.UUID   `db:"uuid"`
	CreatedAt         time.Time   `db:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at"`
	MoteId            int64       `db:"mote_id"`
	Virksomhetsnummer string      `db:"virksomhetsnummer"`
	LederNavn         pgtype.Text `db:"leder_navn"`
	LederEpost        pgtype.Text `db:"leder_epost"`
}

const TABLE_ARBEIDSGIVER = "motedeltaker_arbeidsgiver"

var ArbeidsgiverFields = utils.ColumnList[DBArbeidsgiver]()

func AdaptArbeidsgiver(db DBArbeidsgiver) (models.Arbeidsgiver, error) {
	return models.Arbeidsgiver{
		Id:                db.Id,
		Uuid:              db.Uuid,
		DialogmoteId:      db.MoteId,
		Virksomhetsnummer: db.Virksomhetsnummer,
		LederNavn:         null.NewString(db.LederNavn.String, db.LederNavn.Valid),
		LederEpost:        null.NewString(db.LederEpost.String, db.LederEpost.Valid),
	}, nil
}

type DBBehandler struct {
	Id              int64       `db:"id"`
	Uuid            uuid.UUID   `db:"uuid"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
	MoteId          int64       `db:"mote_id"`
	BehandlerRef    string      `db:"behandler_ref"`
	BehandlerNavn   string      `db:"behandler_navn"`
	BehandlerKontor string      `db:"behandler_kontor"`
	BehandlerType   string      `db:"behandler_type"`
	Personident     pgtype.Text `db:"personident"`
	MottarReferat   bool        `db:"mottar_referat"`
	Deltatt         bool        `db:"deltatt"`
}

const TABLE_BEHANDLER = "motedeltaker_behandler"

var BehandlerFields = utils.ColumnList[DBBehandler]()

func AdaptBehandler(db DBBehandler) (models.Behandler, error) {
	return models.Behandler{
		Id:              db.Id,
		Uuid:            db.Uuid,
		DialogmoteId:    db.MoteId,
		BehandlerRef:    db.BehandlerRef,
		BehandlerNavn:   db.BehandlerNavn,
		BehandlerKontor: db.BehandlerKontor,
		BehandlerType:   db.BehandlerType,
		Personident:     null.NewString(db.Personident.String, db.Personident.Valid),
		MottarReferat:   db.MottarReferat,
		Deltatt:         db.Deltatt,
	}, nil
}

type DBTidSted struct {
	Id        int64       `db:"id"`
	Uuid      uuid.UUID   `db:"uuid"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
	MoteId    int64       `db:"mote_id"`
	Sted      string      `db:"sted"`
	Tid       time.Time   `db:"tid"`
	Videolink pgtype.Text `db:"videolink"`
}

const TABLE_TID_STED = "tid_sted"

var TidStedFields = utils.ColumnList[DBTidSted]()

func AdaptTidSted(db DBTidSted) (models.TidSted, error) {
	return models.TidSted{
		Id:           db.Id,
		Uuid:         db.Uuid,
		DialogmoteId: db.MoteId,
		CreatedAt:    db.CreatedAt,
		Sted:         db.Sted,
		Tid:          db.Tid,
		Videolink:    null.NewString(db.Videolink.String, db.Videolink.Valid),
	}, nil
}

type DBOutdatedDialogmote struct {
	Id     int64     `db:"id"`
	Uuid   uuid.UUID `db:"uuid"`
	Status string    `db:"status"`
	Tid    time.Time `db:"tid"`
}

func AdaptOutdatedDialogmote(db DBOutdatedDialogmote) (models.OutdatedDialogmote, error) {
	return models.OutdatedDialogmote{
		Id:     db.Id,
		Uuid:   db.Uuid,
		Status: models.DialogmoteStatusFrom(db.Status),
		Tid:    db.Tid,
	}, nil
}
