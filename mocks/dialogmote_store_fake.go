package mocks

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/jackc/pgx/v5"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/repositories/clock"
)

// FakeStore keeps the dialogmote tables in memory. It implements the repository methods used by the
// usecases with the same filters and ordering as the postgres queries, and rolls the tables back when
// a transaction fails.
type FakeStore struct {
	clock clock.Clock

	mu     sync.Mutex
	txLock sync.Mutex
	nextId int64
	tables fakeTables

	// Failures makes the named method fail with the error, once per entry.
	Failures map[string]error
}

type fakeTables struct {
	dialogmoter     map[int64]models.Dialogmote
	arbeidstakere   map[int64]models.Arbeidstaker
	arbeidsgivere   map[int64]models.Arbeidsgiver
	behandlere      map[int64]models.Behandler
	tidSteder       map[int64]models.TidSted
	referater       map[int64]models.Referat
	varsler         map[int64]models.Varsel
	statusEndringer map[int64]models.DialogmoteStatusEndring
	attempts        map[attemptKey]int
}

// attemptKey is a row id and the attempts column of the job that failed on it.
type attemptKey struct {
	column string
	id     int64
}

func (t fakeTables) clone() fakeTables {
	return fakeTables{
		dialogmoter:     maps.Clone(t.dialogmoter),
		arbeidstakere:   maps.Clone(t.arbeidstakere),
		arbeidsgivere:   maps.Clone(t.arbeidsgivere),
		behandlere:      maps.Clone(t.behandlere),
		tidSteder:       maps.Clone(t.tidSteder),
		referater:       maps.Clone(t.referater),
		varsler:         maps.Clone(t.varsler),
		statusEndringer: maps.Clone(t.statusEndringer),
		attempts:        maps.Clone(t.attempts),
	}
}

func NewFakeStore(c clock.Clock) *FakeStore {
	return &FakeStore{
		clock: c,
		tables: fakeTables{
			dialogmoter:     make(map[int64]models.Dialogmote),
			arbeidstakere:   make(map[int64]models.Arbeidstaker),
			arbeidsgivere:   make(map[int64]models.Arbeidsgiver),
			behandlere:      make(map[int64]models.Behandler),
			tidSteder:       make(map[int64]models.TidSted),
			referater:       make(map[int64]models.Referat),
			varsler:         make(map[int64]models.Varsel),
			statusEndringer: make(map[int64]models.DialogmoteStatusEndring),
			attempts:        make(map[attemptKey]int),
		},
		Failures: make(map[string]error),
	}
}

// fakeExecutor stands for both the pool and a transaction. The store never runs sql through it.
type fakeExecutor struct {
	pgx.Tx
}

func (e fakeExecutor) RawTx() pgx.Tx {
	return e.Tx
}

func (s *FakeStore) NewExecutor() repositories.Executor {
	return fakeExecutor{}
}

func (s *FakeStore) Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	s.txLock.Lock()
	defer s.txLock.Unlock()

	s.mu.Lock()
	snapshot := s.tables.clone()
	nextId := s.nextId
	s.mu.Unlock()

	if err := fn(fakeExecutor{}); err != nil {
		s.mu.Lock()
		s.tables = snapshot
		s.nextId = nextId
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *FakeStore) Liveness(ctx context.Context, exec repositories.Executor) error {
	return s.failure("Liveness")
}

func (s *FakeStore) failure(method string) error {
	err, ok := s.Failures[method]
	if !ok {
		return nil
	}
	delete(s.Failures, method)
	return err
}

func (s *FakeStore) id() int64 {
	s.nextId++
	return s.nextId
}

func sortedValues[T any](m map[int64]T, keep func(T) bool, compare func(a, b T) int) []T {
	values := make([]T, 0, len(m))
	for _, v := range m {
		if keep(v) {
			values = append(values, v)
		}
	}
	slices.SortFunc(values, compare)
	return values
}

func byCreatedAt(aCreatedAt time.Time, aId int64, bCreatedAt time.Time, bId int64) int {
	if c := aCreatedAt.Compare(bCreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(aId, bId)
}

// byAttempts orders the rows with the fewest failed attempts first, then by creation.
func (s *FakeStore) byAttempts(column string, aId int64, bId int64) int {
	return cmp.Compare(s.tables.attempts[attemptKey{column, aId}], s.tables.attempts[attemptKey{column, bId}])
}

func (s *FakeStore) incrementAttempts(column string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("Increment:" + column); err != nil {
		return err
	}
	s.tables.attempts[attemptKey{column, id}]++
	return nil
}

// Attempts returns the failed attempts counted on a row.
func (s *FakeStore) Attempts(column string, id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables.attempts[attemptKey{column, id}]
}

func limited[T any](values []T, limit int) []T {
	if limit > 0 && len(values) > limit {
		return values[:limit]
	}
	return values
}

// Dialogmoter

func (s *FakeStore) CreateDialogmote(
	ctx context.Context,
	tx repositories.Transaction,
	input models.DialogmoteCreate,
) (models.DialogmoteIdentity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateDialogmote"); err != nil {
		return models.DialogmoteIdentity{}, err
	}

	now := s.clock.Now()
	dialogmote := models.Dialogmote{
		Id:                   s.id(),
		Uuid:                 input.Uuid,
		Status:               input.Status,
		CreatedAt:            now,
		UpdatedAt:            now,
		CreatedBy:            input.CreatedBy,
		TildeltVeilederIdent: input.TildeltVeilederIdent,
		TildeltEnhet:         input.TildeltEnhet,
	}
	s.tables.dialogmoter[dialogmote.Id] = dialogmote

	arbeidstaker := models.Arbeidstaker{
		Id:           s.id(),
		Uuid:         uuid.New(),
		DialogmoteId: dialogmote.Id,
		Personident:  input.Arbeidstaker.Personident,
	}
	s.tables.arbeidstakere[arbeidstaker.Id] = arbeidstaker

	arbeidsgiver := models.Arbeidsgiver{
		Id:                s.id(),
		Uuid:              uuid.New(),
		DialogmoteId:      dialogmote.Id,
		Virksomhetsnummer: input.Arbeidsgiver.Virksomhetsnummer,
		LederNavn:         input.Arbeidsgiver.LederNavn,
		LederEpost:        input.Arbeidsgiver.LederEpost,
	}
	s.tables.arbeidsgivere[arbeidsgiver.Id] = arbeidsgiver

	if b := input.Behandler; b != nil {
		behandler := models.Behandler{
			Id:              s.id(),
			Uuid:            uuid.New(),
			DialogmoteId:    dialogmote.Id,
			BehandlerRef:    b.BehandlerRef,
			BehandlerNavn:   b.BehandlerNavn,
			BehandlerKontor: b.BehandlerKontor,
			BehandlerType:   b.BehandlerType,
			Personident:     b.Personident,
			MottarReferat:   b.MottarReferat,
		}
		s.tables.behandlere[behandler.Id] = behandler
	}

	s.insertTidSted(dialogmote.Id, input.TidSted)
	return models.DialogmoteIdentity{Id: dialogmote.Id, Uuid: dialogmote.Uuid}, nil
}

func (s *FakeStore) insertTidSted(dialogmoteId int64, tidSted models.NewTidSted) {
	row := models.TidSted{
		Id:           s.id(),
		Uuid:         uuid.New(),
		DialogmoteId: dialogmoteId,
		CreatedAt:    s.clock.Now(),
		Sted:         tidSted.Sted,
		Tid:          tidSted.Tid,
		Videolink:    null.NewString(tidSted.Videolink, tidSted.Videolink != ""),
	}
	s.tables.tidSteder[row.Id] = row
}

func (s *FakeStore) GetDialogmote(ctx context.Context, exec repositories.Executor, dialogmoteUuid uuid.UUID) (models.Dialogmote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetDialogmote"); err != nil {
		return models.Dialogmote{}, err
	}
	return s.dialogmoteByUuid(dialogmoteUuid)
}

func (s *FakeStore) GetDialogmoteForUpdate(ctx context.Context, tx repositories.Transaction, dialogmoteUuid uuid.UUID) (models.Dialogmote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("GetDialogmoteForUpdate"); err != nil {
		return models.Dialogmote{}, err
	}
	return s.dialogmoteByUuid(dialogmoteUuid)
}

func (s *FakeStore) dialogmoteByUuid(dialogmoteUuid uuid.UUID) (models.Dialogmote, error) {
	for _, dialogmote := range s.tables.dialogmoter {
		if dialogmote.Uuid == dialogmoteUuid {
			return s.aggregate(dialogmote), nil
		}
	}
	return models.Dialogmote{}, errors.Wrapf(models.NotFoundError, "dialogmote %s", dialogmoteUuid)
}

func (s *FakeStore) aggregate(dialogmote models.Dialogmote) models.Dialogmote {
	for _, a := range s.tables.arbeidstakere {
		if a.DialogmoteId == dialogmote.Id {
			a.Varsler = s.varslerOf(models.ParticipantTypeArbeidstaker, a.Id)
			dialogmote.Arbeidstaker = a
		}
	}
	for _, a := range s.tables.arbeidsgivere {
		if a.DialogmoteId == dialogmote.Id {
			a.Varsler = s.varslerOf(models.ParticipantTypeArbeidsgiver, a.Id)
			dialogmote.Arbeidsgiver = a
		}
	}
	for _, b := range s.tables.behandlere {
		if b.DialogmoteId == dialogmote.Id {
			b.Varsler = s.varslerOf(models.ParticipantTypeBehandler, b.Id)
			dialogmote.Behandler = &b
		}
	}
	dialogmote.TidStedHistory = sortedValues(s.tables.tidSteder,
		func(t models.TidSted) bool { return t.DialogmoteId == dialogmote.Id },
		func(a, b models.TidSted) int { return byCreatedAt(a.CreatedAt, a.Id, b.CreatedAt, b.Id) })
	dialogmote.Referater = sortedValues(s.tables.referater,
		func(r models.Referat) bool { return r.DialogmoteId == dialogmote.Id },
		func(a, b models.Referat) int { return byCreatedAt(a.CreatedAt, a.Id, b.CreatedAt, b.Id) })
	return dialogmote
}

func (s *FakeStore) varslerOf(participantType models.ParticipantType, participantId int64) []models.Varsel {
	return sortedValues(s.tables.varsler,
		func(v models.Varsel) bool { return v.ParticipantType == participantType && v.ParticipantId == participantId },
		func(a, b models.Varsel) int { return byCreatedAt(a.CreatedAt, a.Id, b.CreatedAt, b.Id) })
}

func (s *FakeStore) ListDialogmoterForPersonident(ctx context.Context, exec repositories.Executor, personident string) ([]models.Dialogmote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listDialogmoter(func(d models.Dialogmote) bool { return d.Arbeidstaker.Personident == personident }), nil
}

func (s *FakeStore) ListDialogmoterForVirksomhet(ctx context.Context, exec repositories.Executor, virksomhetsnummer string) ([]models.Dialogmote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listDialogmoter(func(d models.Dialogmote) bool {
		return d.Arbeidsgiver.Virksomhetsnummer == virksomhetsnummer
	}), nil
}

// listDialogmoter returns the newest dialogmote first.
func (s *FakeStore) listDialogmoter(keep func(models.Dialogmote) bool) []models.Dialogmote {
	dialogmoter := make([]models.Dialogmote, 0)
	for _, dialogmote := range s.tables.dialogmoter {
		if aggregate := s.aggregate(dialogmote); keep(aggregate) {
			dialogmoter = append(dialogmoter, aggregate)
		}
	}
	slices.SortFunc(dialogmoter, func(a, b models.Dialogmote) int {
		return byCreatedAt(b.CreatedAt, b.Id, a.CreatedAt, a.Id)
	})
	return dialogmoter
}

func (s *FakeStore) UpdateDialogmoteStatus(ctx context.Context, tx repositories.Transaction, dialogmoteId int64, status models.DialogmoteStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("UpdateDialogmoteStatus"); err != nil {
		return err
	}
	dialogmote, ok := s.tables.dialogmoter[dialogmoteId]
	if !ok {
		return errors.Wrapf(models.NotFoundError, "dialogmote %d", dialogmoteId)
	}
	dialogmote.Status = status
	dialogmote.UpdatedAt = s.clock.Now()
	s.tables.dialogmoter[dialogmoteId] = dialogmote
	return nil
}

func (s *FakeStore) UpdateTildeltVeileder(ctx context.Context, tx repositories.Transaction, dialogmoteId int64, veilederIdent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dialogmote, ok := s.tables.dialogmoter[dialogmoteId]
	if !ok {
		return errors.Wrapf(models.NotFoundError, "dialogmote %d", dialogmoteId)
	}
	dialogmote.TildeltVeilederIdent = veilederIdent
	dialogmote.UpdatedAt = s.clock.Now()
	s.tables.dialogmoter[dialogmoteId] = dialogmote
	return nil
}

func (s *FakeStore) UpdateBehandlerReferatFlags(ctx context.Context, tx repositories.Transaction, behandlerId int64, deltatt, mottarReferat bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	behandler, ok := s.tables.behandlere[behandlerId]
	if !ok {
		return errors.Wrapf(models.NotFoundError, "behandler %d", behandlerId)
	}
	behandler.Deltatt = deltatt
	behandler.MottarReferat = mottarReferat
	s.tables.behandlere[behandlerId] = behandler
	return nil
}

func (s *FakeStore) CreateTidSted(ctx context.Context, tx repositories.Transaction, dialogmoteId int64, tidSted models.NewTidSted) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateTidSted"); err != nil {
		return err
	}
	s.insertTidSted(dialogmoteId, tidSted)
	return nil
}

func (s *FakeStore) ListOutdatedDialogmoter(
	ctx context.Context,
	exec repositories.Executor,
	cutoff time.Time,
	limit int,
) ([]models.OutdatedDialogmote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListOutdatedDialogmoter"); err != nil {
		return nil, err
	}

	outdated := make([]models.OutdatedDialogmote, 0)
	for _, dialogmote := range s.tables.dialogmoter {
		if !dialogmote.Status.IsOpen() {
			continue
		}
		current, ok := s.aggregate(dialogmote).CurrentTidSted()
		if !ok || !current.Tid.Before(cutoff) {
			continue
		}
		outdated = append(outdated, models.OutdatedDialogmote{
			Id:     dialogmote.Id,
			Uuid:   dialogmote.Uuid,
			Status: dialogmote.Status,
			Tid:    current.Tid,
		})
	}
	slices.SortFunc(outdated, func(a, b models.OutdatedDialogmote) int {
		if c := s.byAttempts("sweep_attempts", a.Id, b.Id); c != 0 {
			return c
		}
		return byCreatedAt(a.Tid, a.Id, b.Tid, b.Id)
	})
	return limited(outdated, limit), nil
}

func (s *FakeStore) IncrementSweepAttempts(ctx context.Context, tx repositories.Transaction, dialogmoteId int64) error {
	return s.incrementAttempts("sweep_attempts", dialogmoteId)
}

// Referater

func (s *FakeStore) CreateReferat(ctx context.Context, tx repositories.Transaction, input models.ReferatCreate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateReferat"); err != nil {
		return err
	}
	now := s.clock.Now()
	referat := models.Referat{
		Id:           s.id(),
		Uuid:         input.Uuid,
		DialogmoteId: input.DialogmoteId,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.tables.referater[referat.Id] = applyReferat(referat, input)
	return nil
}

// UpdateReferat only overwrites a draft.
func (s *FakeStore) UpdateReferat(ctx context.Context, tx repositories.Transaction, referatId int64, input models.ReferatCreate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	referat, ok := s.tables.referater[referatId]
	if !ok || referat.Ferdigstilt {
		return errors.Wrapf(models.ConflictError, "referat %d is ferdigstilt", referatId)
	}
	referat.UpdatedAt = s.clock.Now()
	s.tables.referater[referatId] = applyReferat(referat, input)
	return nil
}

func applyReferat(referat models.Referat, input models.ReferatCreate) models.Referat {
	referat.CreatedBy = input.CreatedBy
	referat.Situasjon = input.Situasjon
	referat.Konklusjon = input.Konklusjon
	referat.ArbeidstakerOppgave = input.ArbeidstakerOppgave
	referat.ArbeidsgiverOppgave = input.ArbeidsgiverOppgave
	referat.BehandlerOppgave = input.BehandlerOppgave
	referat.NarmesteLederNavn = input.NarmesteLederNavn
	referat.Andredeltakere = input.Andredeltakere
	referat.DocumentComponents = input.DocumentComponents
	referat.PdfId = input.PdfId
	referat.Ferdigstilt = input.Ferdigstilt
	referat.Endring = input.Endring
	referat.Begrunnelse = input.Begrunnelse
	return referat
}

func (s *FakeStore) ListReferaterToJournalfor(ctx context.Context, exec repositories.Executor, limit int) ([]models.ReferatJournalforing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListReferaterToJournalfor"); err != nil {
		return nil, err
	}

	referater := sortedValues(s.tables.referater,
		func(r models.Referat) bool { return r.Ferdigstilt && !r.JournalpostId.Valid },
		func(a, b models.Referat) int {
			if c := s.byAttempts("referat_journalforing_attempts", a.Id, b.Id); c != 0 {
				return c
			}
			return byCreatedAt(a.CreatedAt, a.Id, b.CreatedAt, b.Id)
		})

	toJournalfor := make([]models.ReferatJournalforing, 0, len(referater))
	for _, referat := range limited(referater, limit) {
		dialogmote := s.aggregate(s.tables.dialogmoter[referat.DialogmoteId])
		var pdfId uuid.UUID
		if referat.PdfId != nil {
			pdfId = *referat.PdfId
		}
		toJournalfor = append(toJournalfor, models.ReferatJournalforing{
			ReferatId:      referat.Id,
			ReferatUuid:    referat.Uuid,
			PdfId:          pdfId,
			Endring:        referat.Endring,
			DialogmoteUuid: dialogmote.Uuid,
			Personident:    dialogmote.Arbeidstaker.Personident,
			CreatedAt:      referat.CreatedAt,
		})
	}
	return toJournalfor, nil
}

func (s *FakeStore) SetReferatJournalpostId(ctx context.Context, tx repositories.Transaction, referatId int64, journalpostId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	referat, ok := s.tables.referater[referatId]
	if !ok || referat.JournalpostId.Valid {
		return nil
	}
	referat.JournalpostId = null.IntFrom(int64(journalpostId))
	s.tables.referater[referatId] = referat
	return nil
}

func (s *FakeStore) IncrementReferatJournalforingAttempts(ctx context.Context, tx repositories.Transaction, referatId int64) error {
	return s.incrementAttempts("referat_journalforing_attempts", referatId)
}

// Status endringer

func (s *FakeStore) CreateStatusEndring(ctx context.Context, tx repositories.Transaction, input models.StatusEndringCreate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateStatusEndring"); err != nil {
		return err
	}
	endring := models.DialogmoteStatusEndring{
		Id:            s.id(),
		Uuid:          input.Uuid,
		DialogmoteId:  input.DialogmoteId,
		Status:        input.Status,
		CreatedBy:     input.CreatedBy,
		TilfelleStart: input.TilfelleStart,
		CreatedAt:     s.clock.Now(),
	}
	s.tables.statusEndringer[endring.Id] = endring
	return nil
}

// StatusEndringer lists the status endringer of a dialogmote in the order they were written.
func (s *FakeStore) StatusEndringer(dialogmoteId int64) []models.DialogmoteStatusEndring {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.tables.statusEndringer,
		func(e models.DialogmoteStatusEndring) bool { return e.DialogmoteId == dialogmoteId },
		func(a, b models.DialogmoteStatusEndring) int { return byCreatedAt(a.CreatedAt, a.Id, b.CreatedAt, b.Id) })
}

func (s *FakeStore) ListUnpublishedStatusEndringer(ctx context.Context, exec repositories.Executor, limit int) ([]models.StatusEndringToPublish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListUnpublishedStatusEndringer"); err != nil {
		return nil, err
	}

	endringer := sortedValues(s.tables.statusEndringer,
		func(e models.DialogmoteStatusEndring) bool { return !e.PublishedAt.Valid },
		func(a, b models.DialogmoteStatusEndring) int { return byCreatedAt(a.CreatedAt, a.Id, b.CreatedAt, b.Id) })

	// a dialogmote is ranked by the attempts of its oldest unpublished endring
	headAttempts := make(map[int64]int)
	for _, endring := range endringer {
		if _, ok := headAttempts[endring.DialogmoteId]; !ok {
			headAttempts[endring.DialogmoteId] = s.tables.attempts[attemptKey{"publish_attempts", endring.Id}]
		}
	}
	slices.SortStableFunc(endringer, func(a, b models.DialogmoteStatusEndring) int {
		return cmp.Compare(headAttempts[a.DialogmoteId], headAttempts[b.DialogmoteId])
	})

	toPublish := make([]models.StatusEndringToPublish, 0, len(endringer))
	for _, endring := range limited(endringer, limit) {
		dialogmote := s.aggregate(s.tables.dialogmoter[endring.DialogmoteId])
		var tid null.Time
		for _, tidSted := range dialogmote.TidStedHistory {
			if byCreatedAt(tidSted.CreatedAt, tidSted.Id, endring.CreatedAt, endring.Id) < 0 {
				tid = null.TimeFrom(tidSted.Tid)
			}
		}
		toPublish = append(toPublish, models.StatusEndringToPublish{
			StatusEndring:     endring,
			DialogmoteUuid:    dialogmote.Uuid,
			DialogmoteTid:     tid,
			Personident:       dialogmote.Arbeidstaker.Personident,
			Virksomhetsnummer: dialogmote.Arbeidsgiver.Virksomhetsnummer,
			TildeltEnhet:      dialogmote.TildeltEnhet,
			HasBehandler:      dialogmote.Behandler != nil,
		})
	}
	return toPublish, nil
}

func (s *FakeStore) MarkStatusEndringPublished(ctx context.Context, tx repositories.Transaction, statusEndringId int64, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	endring, ok := s.tables.statusEndringer[statusEndringId]
	if !ok || endring.PublishedAt.Valid {
		return nil
	}
	endring.PublishedAt = null.TimeFrom(publishedAt)
	s.tables.statusEndringer[statusEndringId] = endring
	return nil
}

func (s *FakeStore) IncrementStatusEndringPublishAttempts(ctx context.Context, tx repositories.Transaction, statusEndringId int64) error {
	return s.incrementAttempts("publish_attempts", statusEndringId)
}

// Varsler

func (s *FakeStore) CreateVarsel(ctx context.Context, tx repositories.Transaction, input models.VarselCreate) (models.Varsel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateVarsel"); err != nil {
		return models.Varsel{}, err
	}
	varsel := models.Varsel{
		Id:                 s.id(),
		Uuid:               input.Uuid,
		ParticipantType:    input.ParticipantType,
		ParticipantId:      input.ParticipantId,
		Type:               input.Type,
		PdfId:              input.PdfId,
		Fritekst:           input.Fritekst,
		DocumentComponents: input.DocumentComponents,
		Channel:            input.Channel,
		CreatedAt:          s.clock.Now(),
	}
	s.tables.varsler[varsel.Id] = varsel
	return varsel, nil
}

func (s *FakeStore) GetVarsel(
	ctx context.Context,
	exec repositories.Executor,
	participantType models.ParticipantType,
	varselUuid uuid.UUID,
) (models.Varsel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.varselId(participantType, varselUuid)
	if !ok {
		return models.Varsel{}, errors.Wrapf(models.NotFoundError, "varsel %s", varselUuid)
	}
	return s.tables.varsler[id], nil
}

func (s *FakeStore) varselId(participantType models.ParticipantType, varselUuid uuid.UUID) (int64, bool) {
	for id, varsel := range s.tables.varsler {
		if varsel.ParticipantType == participantType && varsel.Uuid == varselUuid {
			return id, true
		}
	}
	return 0, false
}

func (s *FakeStore) MarkVarselRead(
	ctx context.Context,
	tx repositories.Transaction,
	participantType models.ParticipantType,
	varselUuid uuid.UUID,
	lestDato time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.varselId(participantType, varselUuid)
	if !ok || s.tables.varsler[id].LestDato.Valid {
		return nil
	}
	varsel := s.tables.varsler[id]
	varsel.LestDato = null.TimeFrom(lestDato)
	s.tables.varsler[id] = varsel
	return nil
}

func (s *FakeStore) SetVarselSvar(
	ctx context.Context,
	tx repositories.Transaction,
	participantType models.ParticipantType,
	varselUuid uuid.UUID,
	svar models.Svar,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.varselId(participantType, varselUuid)
	if !ok || s.tables.varsler[id].Svar != nil {
		return errors.Wrapf(models.ErrVarselAlreadyAnswered, "varsel %s", varselUuid)
	}
	varsel := s.tables.varsler[id]
	varsel.Svar = &svar
	s.tables.varsler[id] = varsel
	return nil
}

func (s *FakeStore) MarkVarselDelivered(
	ctx context.Context,
	tx repositories.Transaction,
	participantType models.ParticipantType,
	varselId int64,
	deliveredAt time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("MarkVarselDelivered"); err != nil {
		return err
	}
	varsel, ok := s.tables.varsler[varselId]
	if !ok || varsel.ParticipantType != participantType || varsel.DeliveredAt.Valid {
		return nil
	}
	varsel.DeliveredAt = null.TimeFrom(deliveredAt)
	s.tables.varsler[varselId] = varsel
	return nil
}

// varselContext is the motedeltaker and dialogmote of a varsel, as joined by the postgres queries.
type varselContext struct {
	dialogmote    models.Dialogmote
	behandlerRef  string
	behandlerNavn string
}

func (s *FakeStore) contextOf(varsel models.Varsel) varselContext {
	var dialogmoteId int64
	var vc varselContext
	switch varsel.ParticipantType {
	case models.ParticipantTypeArbeidstaker:
		dialogmoteId = s.tables.arbeidstakere[varsel.ParticipantId].DialogmoteId
	case models.ParticipantTypeArbeidsgiver:
		dialogmoteId = s.tables.arbeidsgivere[varsel.ParticipantId].DialogmoteId
	case models.ParticipantTypeBehandler:
		behandler := s.tables.behandlere[varsel.ParticipantId]
		dialogmoteId = behandler.DialogmoteId
		vc.behandlerRef = behandler.BehandlerRef
		vc.behandlerNavn = behandler.BehandlerNavn
	}
	vc.dialogmote = s.aggregate(s.tables.dialogmoter[dialogmoteId])
	return vc
}

func (s *FakeStore) ListVarslerToJournalfor(
	ctx context.Context,
	exec repositories.Executor,
	participantType models.ParticipantType,
	limit int,
) ([]models.VarselJournalforing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListVarslerToJournalfor"); err != nil {
		return nil, err
	}

	varsler := sortedValues(s.tables.varsler,
		func(v models.Varsel) bool { return v.ParticipantType == participantType && !v.JournalpostId.Valid },
		func(a, b models.Varsel) int {
			if c := s.byAttempts("journalforing_attempts", a.Id, b.Id); c != 0 {
				return c
			}
			return byCreatedAt(a.CreatedAt, a.Id, b.CreatedAt, b.Id)
		})

	toJournalfor := make([]models.VarselJournalforing, 0, len(varsler))
	for _, varsel := range limited(varsler, limit) {
		vc := s.contextOf(varsel)
		toJournalfor = append(toJournalfor, models.VarselJournalforing{
			VarselId:          varsel.Id,
			VarselUuid:        varsel.Uuid,
			ParticipantType:   participantType,
			Type:              varsel.Type,
			PdfId:             varsel.PdfId,
			DialogmoteUuid:    vc.dialogmote.Uuid,
			Personident:       vc.dialogmote.Arbeidstaker.Personident,
			Virksomhetsnummer: vc.dialogmote.Arbeidsgiver.Virksomhetsnummer,
			BehandlerRef:      vc.behandlerRef,
			BehandlerNavn:     vc.behandlerNavn,
			CreatedAt:         varsel.CreatedAt,
		})
	}
	return toJournalfor, nil
}

func (s *FakeStore) SetVarselJournalpostId(
	ctx context.Context,
	tx repositories.Transaction,
	participantType models.ParticipantType,
	varselId int64,
	journalpostId int,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	varsel, ok := s.tables.varsler[varselId]
	if !ok || varsel.ParticipantType != participantType || varsel.JournalpostId.Valid {
		return nil
	}
	varsel.JournalpostId = null.IntFrom(int64(journalpostId))
	s.tables.varsler[varselId] = varsel
	return nil
}

func (s *FakeStore) ListUndeliveredVarsler(
	ctx context.Context,
	exec repositories.Executor,
	participantType models.ParticipantType,
	createdBefore time.Time,
	limit int,
) ([]models.VarselDelivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListUndeliveredVarsler"); err != nil {
		return nil, err
	}

	varsler := sortedValues(s.tables.varsler,
		func(v models.Varsel) bool {
			return v.ParticipantType == participantType && !v.DeliveredAt.Valid && v.CreatedAt.Before(createdBefore)
		},
		func(a, b models.Varsel) int {
			if c := s.byAttempts("delivery_attempts", a.Id, b.Id); c != 0 {
				return c
			}
			return byCreatedAt(a.CreatedAt, a.Id, b.CreatedAt, b.Id)
		})

	deliveries := make([]models.VarselDelivery, 0, len(varsler))
	for _, varsel := range limited(varsler, limit) {
		vc := s.contextOf(varsel)
		deliveries = append(deliveries, models.VarselDelivery{
			VarselId:          varsel.Id,
			VarselUuid:        varsel.Uuid,
			ParticipantType:   participantType,
			Type:              varsel.Type,
			Channel:           varsel.Channel,
			PdfId:             varsel.PdfId,
			Fritekst:          varsel.Fritekst,
			DialogmoteUuid:    vc.dialogmote.Uuid,
			Personident:       vc.dialogmote.Arbeidstaker.Personident,
			Virksomhetsnummer: vc.dialogmote.Arbeidsgiver.Virksomhetsnummer,
			BehandlerRef:      vc.behandlerRef,
			CreatedAt:         varsel.CreatedAt,
		})
	}
	return deliveries, nil
}

func (s *FakeStore) IncrementVarselJournalforingAttempts(
	ctx context.Context,
	tx repositories.Transaction,
	participantType models.ParticipantType,
	varselId int64,
) error {
	return s.incrementAttempts("journalforing_attempts", varselId)
}

func (s *FakeStore) IncrementVarselDeliveryAttempts(
	ctx context.Context,
	tx repositories.Transaction,
	participantType models.ParticipantType,
	varselId int64,
) error {
	return s.incrementAttempts("delivery_attempts", varselId)
}
