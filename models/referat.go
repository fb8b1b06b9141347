package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
)

type Referat struct {
	Id                  int64
	Uuid                uuid.UUID
	DialogmoteId        int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CreatedBy           string
	Situasjon           string
	Konklusjon          string
	ArbeidstakerOppgave string
	ArbeidsgiverOppgave string
	BehandlerOppgave    null.String
	NarmesteLederNavn   string
	Andredeltakere      []ReferatDeltaker
	DocumentComponents  []DocumentComponent
	PdfId               *uuid.UUID
	Ferdigstilt         bool
	Endring             bool
	Begrunnelse         null.String
	JournalpostId       null.Int
}

type ReferatDeltaker struct {
	Funksjon string `json:"funksjon" validate:"required"`
	Navn     string `json:"navn" validate:"required"`
}

type ReferatCreate struct {
	Uuid                uuid.UUID
	DialogmoteId        int64
	CreatedBy           string
	Situasjon           string
	Konklusjon          string
	ArbeidstakerOppgave string
	ArbeidsgiverOppgave string
	BehandlerOppgave    null.String
	NarmesteLederNavn   string
	Andredeltakere      []ReferatDeltaker
	DocumentComponents  []DocumentComponent
	PdfId               *uuid.UUID
	Ferdigstilt         bool
	Endring             bool
	Begrunnelse         null.String
}

type ReferatJournalforing struct {
	ReferatId      int64
	ReferatUuid    uuid.UUID
	PdfId          uuid.UUID
	Endring        bool
	DialogmoteUuid uuid.UUID
	Personident    string
	CreatedAt      time.Time
}
