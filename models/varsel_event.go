package models

import "github.com/google/uuid"

// VarselDocument is the content sent to one participant. Pdf is rendered from the components when empty.
// A PdfId names a Pdf that is already stored, shared by the varsler of every participant.
type VarselDocument struct {
	Fritekst   string
	Components []DocumentComponent
	Pdf        []byte
	PdfId      uuid.UUID
}

// DialogmoteEvent is a lifecycle event of a dialogmote that notifies its participants.
type DialogmoteEvent struct {
	Type       VarselType
	Dialogmote Dialogmote
	Documents  map[ParticipantType]VarselDocument
}

// Eligible tells whether the participant receives a varsel for the event. The behandler only
// receives the referat when it asked for it.
func (e DialogmoteEvent) Eligible(participant Participant) bool {
	if behandler, ok := participant.(Behandler); ok && e.Type == VarselTypeMinutes && !behandler.MottarReferat {
		return false
	}
	_, hasDocument := e.Documents[participant.ParticipantType()]
	return hasDocument
}

type DispatchResult struct {
	Created   int
	Delivered int
	Failed    int
}

// PdfTemplate is the ispdfgen template used for a varsel.
func PdfTemplate(varselType VarselType, participantType ParticipantType) string {
	var prefix string
	switch varselType {
	case VarselTypeInvited:
		prefix = "innkalling"
	case VarselTypeRescheduled:
		prefix = "endring-tidsted"
	case VarselTypeCancelled:
		prefix = "avlysning"
	case VarselTypeMinutes:
		return "referat"
	}
	switch participantType {
	case ParticipantTypeArbeidsgiver:
		return prefix + "-arbeidsgiver"
	case ParticipantTypeBehandler:
		return prefix + "-behandler"
	default:
		return prefix + "-arbeidstaker"
	}
}
