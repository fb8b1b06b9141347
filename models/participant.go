package models

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/hashicorp/go-set/v2"
)

type ParticipantType string

const (
	ParticipantTypeArbeidstaker ParticipantType = "ARBEIDSTAKER"
	ParticipantTypeArbeidsgiver ParticipantType = "ARBEIDSGIVER"
	ParticipantTypeBehandler    ParticipantType = "BEHANDLER"
)

// ParticipantTypes is the iteration order of the reconciliation jobs.
var ParticipantTypes = []ParticipantType{
	ParticipantTypeArbeidstaker,
	ParticipantTypeArbeidsgiver,
	ParticipantTypeBehandler,
}

var knownParticipantTypes = set.From(ParticipantTypes)

func (t ParticipantType) Validate() error {
	if !knownParticipantTypes.Contains(t) {
		return errors.Wrapf(BadParameterError, "unknown participant type %q", string(t))
	}
	return nil
}

// Participant is implemented by the three kinds of motedeltaker. The varsel pipeline only relies on this capability.
type Participant interface {
	ParticipantType() ParticipantType
	ParticipantId() int64
	ParticipantUuid() uuid.UUID
	ParticipantVarsler() []Varsel
}

type Arbeidstaker struct {
	Id           int64
	Uuid         uuid.UUID
	DialogmoteId int64
	Personident  string
	Varsler      []Varsel
}

func (a Arbeidstaker) ParticipantType() ParticipantType { return ParticipantTypeArbeidstaker }
func (a Arbeidstaker) ParticipantId() int64              { return a.Id }
func (a Arbeidstaker) ParticipantUuid() uuid.UUID        { return a.Uuid }
func (a Arbeidstaker) ParticipantVarsler() []Varsel      { return a.Varsler }

type Arbeidsgiver struct {
	Id                int64
	Uuid              uuid.UUID
	DialogmoteId      int64
	Virksomhetsnummer string
	LederNavn         null.String
	LederEpost        null.String
	Varsler           []Varsel
}

func (a Arbeidsgiver) ParticipantType() ParticipantType { return ParticipantTypeArbeidsgiver }
func (a Arbeidsgiver) ParticipantId() int64              { return a.Id }
func (a Arbeidsgiver) ParticipantUuid() uuid.UUID        { return a.Uuid }
func (a Arbeidsgiver) ParticipantVarsler() []Varsel      { return a.Varsler }

type Behandler struct {
	Id              int64
	Uuid            uuid.UUID
	DialogmoteId    int64
	BehandlerRef    string
	BehandlerNavn   string
	BehandlerKontor string
	BehandlerType   string
	Personident     null.String
	MottarReferat   bool
	Deltatt         bool
	Varsler         []Varsel
}

func (b Behandler) ParticipantType() ParticipantType { return ParticipantTypeBehandler }
func (b Behandler) ParticipantId() int64              { return b.Id }
func (b Behandler) ParticipantUuid() uuid.UUID        { return b.Uuid }
func (b Behandler) ParticipantVarsler() []Varsel      { return b.Varsler }

type ArbeidstakerCreate struct {
	Personident string
}

type ArbeidsgiverCreate struct {
	Virksomhetsnummer string
	LederNavn         null.String
	LederEpost        null.String
}

type BehandlerCreate struct {
	BehandlerRef    string
	BehandlerNavn   string
	BehandlerKontor string
	BehandlerType   string
	Personident     null.String
	MottarReferat   bool
}

type NarmesteLeder struct {
	Personident       string
	Virksomhetsnummer string
	Navn              string
}
