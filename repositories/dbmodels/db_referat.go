package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/utils"
)

type DBReferat struct {
	Id                  int64       `db:"id"`
	Uuid                uuid.UUID   `db:"uuid"`
	CreatedAt           time.Time   `db:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at"`
	MoteId              int64       `db:"mote_id"`
	OpprettetAv         string      `db:"opprettet_av"`
	Situasjon           string      `db:"situasjon"`
	Konklusjon          string      `db:"konklusjon"`
	ArbeidstakerOppgave string      `db:"arbeidstaker_oppgave"`
	ArbeidsgiverOppgave string      `db:"arbeidsgiver_oppgave"`
	BehandlerOppgave    pgtype.Text `db:"behandler_oppgave"`
	NarmesteLederNavn   string      `db:"narmeste_leder_navn"`
	AndreDeltakere      []byte      `db:"andre_deltakere"`
	Document            []byte      `db:"document"`
	PdfId               pgtype.UUID `db:"pdf_id"`
	Ferdigstilt         bool        `db:"ferdigstilt"`
	Endring             bool        `db:"endring"`
	Begrunnelse         pgtype.Text `db:"begrunnelse"`
	JournalpostId       pgtype.Int4 `db:"journalpost_id"`
}

const TABLE_REFERAT = "mote_referat"

var ReferatFields = utils.ColumnList[DBReferat]()

func AdaptReferat(db DBReferat) (models.Referat, error) {
	andredeltakere := make([]models.ReferatDeltaker, 0)
	if len(db.AndreDeltakere) > 0 {
		if err := json.Unmarshal(db.AndreDeltakere, &andredeltakere); err != nil {
			return models.Referat{}, errors.Wrap(err, "could not unmarshal andre deltakere")
		}
	}
	components, err := UnmarshalDocument(db.Document)
	if err != nil {
		return models.Referat{}, err
	}

	referat := models.Referat{
		Id:                  db.Id,
		Uuid:                db.Uuid,
		DialogmoteId:        db.MoteId,
		CreatedAt:           db.CreatedAt,
		UpdatedAt:           db.UpdatedAt,
		CreatedBy:           db.OpprettetAv,
		Situasjon:           db.Situasjon,
		Konklusjon:          db.Konklusjon,
		ArbeidstakerOppgave: db.ArbeidstakerOppgave,
		ArbeidsgiverOppgave: db.ArbeidsgiverOppgave,
		BehandlerOppgave:    null.NewString(db.BehandlerOppgave.String, db.BehandlerOppgave.Valid),
		NarmesteLederNavn:   db.NarmesteLederNavn,
		Andredeltakere:      andredeltakere,
		DocumentComponents:  components,
		Ferdigstilt:         db.Ferdigstilt,
		Endring:             db.Endring,
		Begrunnelse:         null.NewString(db.Begrunnelse.String, db.Begrunnelse.Valid),
	}
	if db.PdfId.Valid {
		pdfId := uuid.UUID(db.PdfId.Bytes)
		referat.PdfId = &pdfId
	}
	if db.JournalpostId.Valid {
		referat.JournalpostId = null.IntFrom(int64(db.JournalpostId.Int32))
	}
	return referat, nil
}

func MarshalAndreDeltakere(deltakere []models.ReferatDeltaker) ([]byte, error) {
	if deltakere == nil {
		deltakere = []models.ReferatDeltaker{}
	}
	b, err := json.Marshal(deltakere)
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal andre deltakere")
	}
	return b, nil
}

type DBReferatJournalforing struct {
	Id             int64     `db:"id"`
	Uuid           uuid.UUID `db:"uuid"`
	CreatedAt      time.Time `db:"created_at"`
	PdfId          uuid.UUID `db:"pdf_id"`
	Endring        bool      `db:"endring"`
	DialogmoteUuid uuid.UUID `db:"dialogmote_uuid"`
	Personident    string    `db:"personident"`
}

func AdaptReferatJournalforing(db DBReferatJournalforing) (models.ReferatJournalforing, error) {
	return models.ReferatJournalforing{
		ReferatId:      db.Id,
		ReferatUuid:    db.Uuid,
		PdfId:          db.PdfId,
		Endring:        db.Endring,
		DialogmoteUuid: db.DialogmoteUuid,
		Personident:    db.Personident,
		CreatedAt:      db.CreatedAt,
	}, nil
}
