package jobs

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"

	"github.com/navikt/isdialogmote-sub002/infra"
	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/usecases"
)

const (
	DEFAULT_JOURNALFORING_CRON       = "* * * * *"
	DEFAULT_STATUS_ENDRING_CRON      = "* * * * *"
	DEFAULT_VARSEL_DELIVERY_CRON     = "*/5 * * * *"
	DEFAULT_OUTDATED_DIALOGMOTE_CRON = "0 3 * * *"
)

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func cronOrDefault(expr, defaultExpr string) string {
	if expr == "" {
		return defaultExpr
	}
	return expr
}

// RunScheduler runs the periodic jobs on cron expressions, without the task queue. It blocks until the context is done.
func RunScheduler(ctx context.Context, config infra.JobsConfig, uc usecases.Usecases) {
	taskr := tasker.New(tasker.Option{
		Verbose: true,
		Tz:      "Europe/Oslo",
	}).WithContext(ctx)

	schedule := func(expr, jobName string, runner jobRunner) {
		notConcurrent := false
		taskr.Task(expr, func(ctx context.Context) (int, error) {
			err := executeWithMonitoring(ctx, jobName, runner)
			return errToReturnCode(err), err
		}, notConcurrent)
	}

	schedule(cronOrDefault(config.JournalforingCron, DEFAULT_JOURNALFORING_CRON),
		models.JournalforingArgs{}.Kind(), uc.NewJournalforingReconciler())
	schedule(cronOrDefault(config.StatusEndringCron, DEFAULT_STATUS_ENDRING_CRON),
		models.StatusEndringPublishArgs{}.Kind(), uc.NewStatusEndringPublisher())
	schedule(cronOrDefault(config.VarselDeliveryCron, DEFAULT_VARSEL_DELIVERY_CRON),
		models.VarselDeliveryArgs{}.Kind(), uc.NewDeliveryReconciler())
	schedule(cronOrDefault(config.OutdatedDialogmoteCron, DEFAULT_OUTDATED_DIALOGMOTE_CRON),
		models.OutdatedDialogmoteArgs{}.Kind(), uc.NewOutdatedSweeper())

	taskr.Run()
}
