package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/navikt/isdialogmote-sub002/infra"
	"github.com/navikt/isdialogmote-sub002/models"
)

type runnerMock struct {
	mock.Mock
}

func (m *runnerMock) RunOnce(ctx context.Context) (models.JobResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.JobResult), args.Error(1)
}

func jobOf[T river.JobArgs](args T) *river.Job[T] {
	return &river.Job[T]{JobRow: &rivertype.JobRow{Kind: args.Kind()}, Args: args}
}

func TestWorkers_partial_failure_succeeds(t *testing.T) {
	ctx := context.Background()
	runner := new(runnerMock)
	runner.On("RunOnce", mock.Anything).Return(models.JobResult{Updated: 3, Failed: 2}, nil)

	assert.NoError(t, NewJournalforingWorker(runner).Work(ctx, jobOf(models.JournalforingArgs{})))
	assert.NoError(t, NewStatusEndringWorker(runner).Work(ctx, jobOf(models.StatusEndringPublishArgs{})))
	assert.NoError(t, NewVarselDeliveryWorker(runner).Work(ctx, jobOf(models.VarselDeliveryArgs{})))
	assert.NoError(t, NewOutdatedDialogmoteWorker(runner).Work(ctx, jobOf(models.OutdatedDialogmoteArgs{})))
	runner.AssertNumberOfCalls(t, "RunOnce", 4)
}

func TestWorkers_listing_failure_fails_the_job(t *testing.T) {
	ctx := context.Background()
	runner := new(runnerMock)
	listingErr := errors.New("could not list unpublished status endringer")
	runner.On("RunOnce", mock.Anything).Return(models.JobResult{}, listingErr)

	err := NewStatusEndringWorker(runner).Work(ctx, jobOf(models.StatusEndringPublishArgs{}))

	assert.ErrorIs(t, err, listingErr)
}

func TestWorkers_timeout(t *testing.T) {
	worker := NewOutdatedDialogmoteWorker(new(runnerMock))

	assert.Equal(t, JOB_MAX_DURATION, worker.Timeout(jobOf(models.OutdatedDialogmoteArgs{})))
}

func TestExecuteWithMonitoring(t *testing.T) {
	ctx := context.Background()
	runner := new(runnerMock)
	runner.On("RunOnce", mock.Anything).Return(models.JobResult{}, errors.New("connection refused")).Once()
	runner.On("RunOnce", mock.Anything).Return(models.JobResult{Updated: 1}, nil).Once()

	err := executeWithMonitoring(ctx, "journalforing", runner)
	assert.ErrorContains(t, err, "error executing job journalforing")
	assert.Equal(t, 1, errToReturnCode(err))

	err = executeWithMonitoring(ctx, "journalforing", runner)
	assert.NoError(t, err)
	assert.Equal(t, 0, errToReturnCode(err))
}

func TestRecovererMiddleware(t *testing.T) {
	err := NewRecovererMiddleware().Work(context.Background(), &rivertype.JobRow{Kind: "varsel_delivery"},
		func(ctx context.Context) error {
			panic("nil map")
		})

	assert.ErrorContains(t, err, "panic in varsel_delivery job: nil map")
}

func TestPeriodicJobs(t *testing.T) {
	assert.Len(t, PeriodicJobs(infra.JobsConfig{}), 4)
	assert.Equal(t, DEFAULT_VARSEL_DELIVERY_INTERVAL, intervalOrDefault(0, DEFAULT_VARSEL_DELIVERY_INTERVAL))
	assert.Equal(t, 30*time.Second, intervalOrDefault(30*time.Second, DEFAULT_VARSEL_DELIVERY_INTERVAL))
	assert.Equal(t, DEFAULT_OUTDATED_DIALOGMOTE_CRON, cronOrDefault("", DEFAULT_OUTDATED_DIALOGMOTE_CRON))
	assert.Equal(t, "0 4 * * *", cronOrDefault("0 4 * * *", DEFAULT_OUTDATED_DIALOGMOTE_CRON))
}
