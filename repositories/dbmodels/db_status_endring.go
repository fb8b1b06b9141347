package dbmodels

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/utils"
)

type DBStatusEndring struct {
	Id            int64              `db:"id"`
	Uuid          uuid.UUID          `db:"uuid"`
	CreatedAt     time.Time          `db:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at"`
	MoteId        int64              `db:"mote_id"`
	Status        string             `db:"status"`
	OpprettetAv   string             `db:"opprettet_av"`
	TilfelleStart pgtype.Date        `db:"tilfelle_start"`
	PublishedAt   pgtype.Timestamptz `db:"published_at"`
}

const TABLE_STATUS_ENDRING = "mote_status_endret"

var StatusEndringFields = utils.ColumnList[DBStatusEndring]()

func AdaptStatusEndring(db DBStatusEndring) (models.DialogmoteStatusEndring, error) {
	return models.DialogmoteStatusEndring{
		Id:            db.Id,
		Uuid:          db.Uuid,
		DialogmoteId:  db.MoteId,
		Status:        models.DialogmoteStatusFrom(db.Status),
		CreatedBy:     db.OpprettetAv,
		TilfelleStart: null.NewTime(db.TilfelleStart.Time, db.TilfelleStart.Valid),
		PublishedAt:   null.NewTime(db.PublishedAt.Time, db.PublishedAt.Valid),
		CreatedAt:     db.CreatedAt,
	}, nil
}

// DBStatusEndringToPublish is a status endring joined with its dialogmote, its participants and its current tid.
type DBStatusEndringToPublish struct {
	DBStatusEndring
	DialogmoteUuid    uuid.UUID          `db:"dialogmote_uuid"`
	DialogmoteTid     pgtype.Timestamptz `db:"dialogmote_tid"`
	Personident       string             `db:"personident"`
	Virksomhetsnummer string             `db:"virksomhetsnummer"`
	TildeltEnhet      string             `db:"tildelt_enhet"`
	HasBehandler      bool               `db:"has_behandler"`
}

func AdaptStatusEndringToPublish(db DBStatusEndringToPublish) (models.StatusEndringToPublish, error) {
	statusEndring, err := AdaptStatusEndring(db.DBStatusEndring)
	if err != nil {
		return models.StatusEndringToPublish{}, err
	}
	return models.StatusEndringToPublish{
		StatusEndring:     statusEndring,
		DialogmoteUuid:    db.DialogmoteUuid,
		DialogmoteTid:     null.NewTime(db.DialogmoteTid.Time, db.DialogmoteTid.Valid),
		Personident:       db.Personident,
		Virksomhetsnummer: db.Virksomhetsnummer,
		TildeltEnhet:      db.TildeltEnhet,
		HasBehandler:      db.HasBehandler,
	}, nil
}
