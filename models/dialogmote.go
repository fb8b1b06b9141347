package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
)

type Dialogmote struct {
	Id                   int64
	Uuid                 uuid.UUID
	Status               DialogmoteStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CreatedBy            string
	TildeltVeilederIdent string
	TildeltEnhet         string
	Arbeidstaker         Arbeidstaker
	Arbeidsgiver         Arbeidsgiver
	Behandler            *Behandler
	TidStedHistory       []TidSted
	Referater            []Referat
}

type TidSted struct {
	Id           int64
	Uuid         uuid.UUID
	DialogmoteId int64
	CreatedAt    time.Time
	Sted         string
	Tid          time.Time
	Videolink    null.String
}

// CurrentTidSted is the entry of the history with the latest CreatedAt. Ties go to the latest inserted row.
func (d Dialogmote) CurrentTidSted() (TidSted, bool) {
	if len(d.TidStedHistory) == 0 {
		return TidSted{}, false
	}
	current := d.TidStedHistory[0]
	for _, tidSted := range d.TidStedHistory[1:] {
		if tidSted.CreatedAt.After(current.CreatedAt) ||
			(tidSted.CreatedAt.Equal(current.CreatedAt) && tidSted.Id > current.Id) {
			current = tidSted
		}
	}
	return current, true
}

// Participants returns the arbeidstaker, the arbeidsgiver and the behandler if there is one.
func (d Dialogmote) Participants() []Participant {
	participants := []Participant{d.Arbeidstaker, d.Arbeidsgiver}
	if d.Behandler != nil {
		participants = append(participants, *d.Behandler)
	}
	return participants
}

// FinalReferat is the latest ferdigstilt referat, amendments included.
func (d Dialogmote) FinalReferat() (Referat, bool) {
	return d.latestReferat(true)
}

func (d Dialogmote) DraftReferat() (Referat, bool) {
	return d.latestReferat(false)
}

func (d Dialogmote) latestReferat(ferdigstilt bool) (Referat, bool) {
	var found *Referat
	for i := range d.Referater {
		referat := d.Referater[i]
		if referat.Ferdigstilt != ferdigstilt {
			continue
		}
		if found == nil || referat.CreatedAt.After(found.CreatedAt) ||
			(referat.CreatedAt.Equal(found.CreatedAt) && referat.Id > found.Id) {
			found = &referat
		}
	}
	if found == nil {
		return Referat{}, false
	}
	return *found, true
}

// DialogmoteCreate is the input of the atomic creation of a dialogmote with its participants and its first tid and sted.
type DialogmoteCreate struct {
	Uuid                 uuid.UUID
	Status               DialogmoteStatus
	CreatedBy            string
	TildeltVeilederIdent string
	TildeltEnhet         string
	Arbeidstaker         ArbeidstakerCreate
	Arbeidsgiver         ArbeidsgiverCreate
	Behandler            *BehandlerCreate
	TidSted              NewTidSted
}

type DialogmoteIdentity struct {
	Id   int64
	Uuid uuid.UUID
}

type OutdatedDialogmote struct {
	Id     int64
	Uuid   uuid.UUID
	Status DialogmoteStatus
	Tid    time.Time
}
