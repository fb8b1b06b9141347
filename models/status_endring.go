package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
)

type DialogmoteStatusEndring struct {
	Id            int64
	Uuid          uuid.UUID
	DialogmoteId  int64
	Status        DialogmoteStatus
	CreatedBy     string
	TilfelleStart null.Time
	PublishedAt   null.Time
	CreatedAt     time.Time
}

type StatusEndringCreate struct {
	Uuid          uuid.UUID
	DialogmoteId  int64
	Status        DialogmoteStatus
	CreatedBy     string
	TilfelleStart null.Time
}

// StatusEndringToPublish is an unpublished status endring joined with the dialogmote it belongs to.
type StatusEndringToPublish struct {
	StatusEndring     DialogmoteStatusEndring
	DialogmoteUuid    uuid.UUID
	DialogmoteTid     null.Time
	Personident       string
	Virksomhetsnummer string
	TildeltEnhet      string
	HasBehandler      bool
}

// KDialogmoteStatusEndring is the payload published on the status endring topic.
type KDialogmoteStatusEndring struct {
	DialogmoteUuid         string     `json:"dialogmoteUuid"`
	DialogmoteTidspunkt    *time.Time `json:"dialogmoteTidspunkt"`
	StatusEndringType      string     `json:"statusEndringType"`
	StatusEndringTidspunkt time.Time  `json:"statusEndringTidspunkt"`
	PersonIdent            string     `json:"personIdent"`
	VirksomhetsNummer      string     `json:"virksomhetsnummer"`
	EnhetNr                string     `json:"enhetNr"`
	TilfelleStartdato      *time.Time `json:"tilfelleStartdato"`
	NavIdent               string     `json:"navIdent"`
	Arbeidstaker           bool       `json:"arbeidstaker"`
	Arbeidsgiver           bool       `json:"arbeidsgiver"`
	Sykmelder              bool       `json:"sykmelder"`
}

func NewKDialogmoteStatusEndring(s StatusEndringToPublish) KDialogmoteStatusEndring {
	return KDialogmoteStatusEndring{
		DialogmoteUuid:         s.DialogmoteUuid.String(),
		DialogmoteTidspunkt:    s.DialogmoteTid.Ptr(),
		StatusEndringType:      string(s.StatusEndring.Status),
		StatusEndringTidspunkt: s.StatusEndring.CreatedAt,
		PersonIdent:            s.Personident,
		VirksomhetsNummer:      s.Virksomhetsnummer,
		EnhetNr:                s.TildeltEnhet,
		TilfelleStartdato:      s.StatusEndring.TilfelleStart.Ptr(),
		NavIdent:               s.StatusEndring.CreatedBy,
		Arbeidstaker:           true,
		Arbeidsgiver:           true,
		Sykmelder:              s.HasBehandler,
	}
}
