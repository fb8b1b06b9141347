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

// The three varsel tables share the same columns. The owning motedeltaker is the participant of the type.
type DBVarsel struct {
	Id             int64              `db:"id"`
	Uuid           uuid.UUID          `db:"uuid"`
	CreatedAt      time.Time          `db:"created_at"`
	UpdatedAt      time.Time          `db:"updated_at"`
	MotedeltakerId int64              `db:"motedeltaker_id"`
	Varseltype     string             `db:"varseltype"`
	PdfId          uuid.UUID          `db:"pdf_id"`
	Fritekst       string             `db:"fritekst"`
	Document       []byte             `db:"document"`
	Kanal          string             `db:"kanal"`
	LestDato       pgtype.Timestamptz `db:"lest_dato"`
	SvarType       pgtype.Text        `db:"svar_type"`
	SvarTekst      pgtype.Text        `db:"svar_tekst"`
	SvarTidspunkt  pgtype.Timestamptz `db:"svar_tidspunkt"`
	JournalpostId  pgtype.Int4        `db:"journalpost_id"`
	DeliveredAt    pgtype.Timestamptz `db:"delivered_at"`
}

var VarselFields = utils.ColumnList[DBVarsel]()

func VarselTable(participantType models.ParticipantType) string {
	return ParticipantTable(participantType) + "_varsel"
}

func ParticipantTable(participantType models.ParticipantType) string {
	switch participantType {
	case models.ParticipantTypeArbeidsgiver:
		return TABLE_ARBEIDSGIVER
	case models.ParticipantTypeBehandler:
		return TABLE_BEHANDLER
	default:
		return TABLE_ARBEIDSTAKER
	}
}

func AdaptVarsel(participantType models.ParticipantType) func(db DBVarsel) (models.Varsel, error) {
	return func(db DBVarsel) (models.Varsel, error) {
		components, err := UnmarshalDocument(db.Document)
		if err != nil {
			return models.Varsel{}, err
		}

		varsel := models.Varsel{
			Id:                 db.Id,
			Uuid:               db.Uuid,
			ParticipantType:    participantType,
			ParticipantId:      db.MotedeltakerId,
			Type:               models.VarselTypeFrom(db.Varseltype),
			PdfId:              db.PdfId,
			Fritekst:           db.Fritekst,
			DocumentComponents: components,
			LestDato:           null.NewTime(db.LestDato.Time, db.LestDato.Valid),
			DeliveredAt:        null.NewTime(db.DeliveredAt.Time, db.DeliveredAt.Valid),
			Channel:            models.DeliveryChannelFrom(db.Kanal),
			CreatedAt:          db.CreatedAt,
		}
		if db.JournalpostId.Valid {
			varsel.JournalpostId = null.IntFrom(int64(db.JournalpostId.Int32))
		}
		if db.SvarType.Valid {
			varsel.Svar = &models.Svar{
				Type:      models.SvarType(db.SvarType.String),
				Tekst:     db.SvarTekst.String,
				Tidspunkt: db.SvarTidspunkt.Time,
			}
		}
		return varsel, nil
	}
}

func UnmarshalDocument(document []byte) ([]models.DocumentComponent, error) {
	components := make([]models.DocumentComponent, 0)
	if len(document) == 0 {
		return components, nil
	}
	if err := json.Unmarshal(document, &components); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal document components")
	}
	return components, nil
}

func MarshalDocument(components []models.DocumentComponent) ([]byte, error) {
	if components == nil {
		components = []models.DocumentComponent{}
	}
	document, err := json.Marshal(components)
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal document components")
	}
	return document, nil
}

// DBVarselContext is a varsel joined with its motedeltaker and the dialogmote.
type DBVarselContext struct {
	Id                int64       `db:"id"`
	Uuid              uuid.UUID   `db:"uuid"`
	CreatedAt         time.Time   `db:"created_at"`
	Varseltype        string      `db:"varseltype"`
	PdfId             uuid.UUID   `db:"pdf_id"`
	Fritekst          string      `db:"fritekst"`
	Kanal             string      `db:"kanal"`
	DialogmoteUuid    uuid.UUID   `db:"dialogmote_uuid"`
	Personident       string      `db:"personident"`
	Virksomhetsnummer string      `db:"virksomhetsnummer"`
	BehandlerRef      pgtype.Text `db:"behandler_ref"`
	BehandlerNavn     pgtype.Text `db:"behandler_navn"`
}

func AdaptVarselJournalforing(participantType models.ParticipantType) func(db DBVarselContext) (models.VarselJournalforing, error) {
	return func(db DBVarselContext) (models.VarselJournalforing, error) {
		return models.VarselJournalforing{
			VarselId:          db.Id,
			VarselUuid:        db.Uuid,
			ParticipantType:   participantType,
			Type:              models.VarselTypeFrom(db.Varseltype),
			PdfId:             db.PdfId,
			DialogmoteUuid:    db.DialogmoteUuid,
			Personident:       db.Personident,
			Virksomhetsnummer: db.Virksomhetsnummer,
			BehandlerRef:      db.BehandlerRef.String,
			BehandlerNavn:     db.BehandlerNavn.String,
			CreatedAt:         db.CreatedAt,
		}, nil
	}
}

func AdaptVarselDelivery(participantType models.ParticipantType) func(db DBVarselContext) (models.VarselDelivery, error) {
	return func(db DBVarselContext) (models.VarselDelivery, error) {
		return models.VarselDelivery{
			VarselId:          db.Id,
			VarselUuid:        db.Uuid,
			ParticipantType:   participantType,
			Type:              models.VarselTypeFrom(db.Varseltype),
			Channel:           models.DeliveryChannelFrom(db.Kanal),
			PdfId:             db.PdfId,
			Fritekst:          db.Fritekst,
			DialogmoteUuid:    db.DialogmoteUuid,
			Personident:       db.Personident,
			Virksomhetsnummer: db.Virksomhetsnummer,
			BehandlerRef:      db.BehandlerRef.String,
			CreatedAt:         db.CreatedAt,
		}, nil
	}
}
