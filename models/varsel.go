package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
)

type VarselType string

const (
	VarselTypeInvited     VarselType = "INVITED"
	VarselTypeRescheduled VarselType = "RESCHEDULED"
	VarselTypeCancelled   VarselType = "CANCELLED"
	VarselTypeMinutes     VarselType = "MINUTES"
)

func VarselTypeFrom(s string) VarselType {
	return VarselType(s)
}

// Accepts a svar from the participant
func (t VarselType) IsAnswerable() bool {
	return t == VarselTypeInvited || t == VarselTypeRescheduled
}

type DeliveryChannel string

const (
	DeliveryChannelDigital       DeliveryChannel = "DIGITAL"
	DeliveryChannelPaper         DeliveryChannel = "PAPER"
	DeliveryChannelNarmesteLeder DeliveryChannel = "NARMESTE_LEDER"
	DeliveryChannelAltinn        DeliveryChannel = "ALTINN"
	DeliveryChannelDialogmelding DeliveryChannel = "DIALOGMELDING"
	DeliveryChannelUnknown       DeliveryChannel = "UNKNOWN"
)

func DeliveryChannelFrom(s string) DeliveryChannel {
	switch DeliveryChannel(s) {
	case DeliveryChannelDigital, DeliveryChannelPaper, DeliveryChannelNarmesteLeder,
		DeliveryChannelAltinn, DeliveryChannelDialogmelding:
		return DeliveryChannel(s)
	}
	return DeliveryChannelUnknown
}

type SvarType string

const (
	SvarTypeKommer      SvarType = "KOMMER"
	SvarTypeNyttTidSted SvarType = "NYTT_TID_STED"
	SvarTypeKommerIkke  SvarType = "KOMMER_IKKE"
)

type Svar struct {
	Type      SvarType `validate:"required,oneof=KOMMER NYTT_TID_STED KOMMER_IKKE"`
	Tekst     string
	Tidspunkt time.Time
}

type DocumentComponent struct {
	Type  string   `json:"type"`
	Key   string   `json:"key,omitempty"`
	Title string   `json:"title,omitempty"`
	Texts []string `json:"texts"`
}

type Varsel struct {
	Id                 int64
	Uuid               uuid.UUID
	ParticipantType    ParticipantType
	ParticipantId      int64
	Type               VarselType
	PdfId              uuid.UUID
	Fritekst           string
	DocumentComponents []DocumentComponent
	LestDato           null.Time
	Svar               *Svar
	JournalpostId      null.Int
	DeliveredAt        null.Time
	Channel            DeliveryChannel
	CreatedAt          time.Time
}

type VarselCreate struct {
	Uuid               uuid.UUID
	ParticipantType    ParticipantType
	ParticipantId      int64
	Type               VarselType
	PdfId              uuid.UUID
	Fritekst           string
	DocumentComponents []DocumentComponent
	Channel            DeliveryChannel
}

// VarselDelivery is everything a delivery channel needs to hand a varsel over.
type VarselDelivery struct {
	VarselId          int64
	VarselUuid        uuid.UUID
	ParticipantType   ParticipantType
	Type              VarselType
	Channel           DeliveryChannel
	PdfId             uuid.UUID
	Pdf               []byte
	Fritekst          string
	DialogmoteUuid    uuid.UUID
	Personident       string
	Virksomhetsnummer string
	NarmesteLeder     *NarmesteLeder
	BehandlerRef      string
	CreatedAt         time.Time
}

// VarselJournalforing is a varsel without journalpost id, with the data needed to build the journalpost.
type VarselJournalforing struct {
	VarselId          int64
	VarselUuid        uuid.UUID
	ParticipantType   ParticipantType
	Type              VarselType
	PdfId             uuid.UUID
	DialogmoteUuid    uuid.UUID
	Personident       string
	Virksomhetsnummer string
	BehandlerRef      string
	BehandlerNavn     string
	CreatedAt         time.Time
}
