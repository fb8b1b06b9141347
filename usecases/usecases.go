package usecases

import (
	"time"

	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/usecases/executor_factory"
	"github.com/navikt/isdialogmote-sub002/usecases/journalforing"
	"github.com/navikt/isdialogmote-sub002/usecases/outdated"
	"github.com/navikt/isdialogmote-sub002/usecases/statusendring"
	"github.com/navikt/isdialogmote-sub002/usecases/varsel"
)

type Usecases struct {
	Repositories              repositories.Repositories
	journalforingBatchSize    int
	outdatedCutoffMonths      int
	varselDeliveryGracePeriod time.Duration
}

type Option func(*options)

func WithJournalforingBatchSize(size int) Option {
	return func(o *options) {
		o.journalforingBatchSize = size
	}
}

func WithOutdatedCutoffMonths(months int) Option {
	return func(o *options) {
		o.outdatedCutoffMonths = months
	}
}

func WithVarselDeliveryGracePeriod(gracePeriod time.Duration) Option {
	return func(o *options) {
		o.varselDeliveryGracePeriod = gracePeriod
	}
}

type options struct {
	journalforingBatchSize    int
	outdatedCutoffMonths      int
	varselDeliveryGracePeriod time.Duration
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return Usecases{
		Repositories:              repositories,
		journalforingBatchSize:    o.journalforingBatchSize,
		outdatedCutoffMonths:      o.outdatedCutoffMonths,
		varselDeliveryGracePeriod: o.varselDeliveryGracePeriod,
	}
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.DbRepository,
	}
}

func (usecases *Usecases) deliveryChannels() varsel.Channels {
	return varsel.Channels{
		Digital:       usecases.Repositories.EsyfovarselProducer,
		Paper:         usecases.Repositories.BrevClient,
		NarmesteLeder: usecases.Repositories.EsyfovarselProducer,
		Altinn:        usecases.Repositories.AltinnClient,
		Dialogmelding: usecases.Repositories.DialogmeldingProducer,
	}
}

func (usecases *Usecases) NewVarselDispatcher() varsel.Dispatcher {
	return varsel.NewDispatcher(
		usecases.NewTransactionFactory(),
		usecases.Repositories.DbRepository,
		usecases.Repositories.PdfgenClient,
		usecases.Repositories.PdfRepository,
		usecases.Repositories.KrrClient,
		usecases.Repositories.NarmesteLederClient,
		usecases.deliveryChannels(),
		usecases.Repositories.Clock,
	)
}

func (usecases *Usecases) NewDialogmoteUsecase() DialogmoteUsecase {
	return NewDialogmoteUsecase(
		usecases.NewExecutorFactory(),
		usecases.NewTransactionFactory(),
		usecases.Repositories.DbRepository,
		usecases.NewVarselDispatcher(),
		usecases.Repositories.PdfgenClient,
		usecases.Repositories.PdfRepository,
		usecases.Repositories.OppfolgingstilfelleClient,
		usecases.Repositories.Clock,
	)
}

func (usecases *Usecases) NewDeliveryReconciler() varsel.DeliveryReconciler {
	return varsel.NewDeliveryReconciler(
		usecases.NewExecutorFactory(),
		usecases.NewTransactionFactory(),
		usecases.Repositories.DbRepository,
		usecases.Repositories.PdfRepository,
		usecases.Repositories.NarmesteLederClient,
		usecases.deliveryChannels(),
		usecases.Repositories.Clock,
		usecases.journalforingBatchSize,
		usecases.varselDeliveryGracePeriod,
	)
}

func (usecases *Usecases) NewJournalforingReconciler() journalforing.Reconciler {
	return journalforing.NewReconciler(
		usecases.NewExecutorFactory(),
		usecases.NewTransactionFactory(),
		usecases.Repositories.DbRepository,
		usecases.Repositories.DokarkivClient,
		usecases.Repositories.PdfRepository,
		usecases.Repositories.PdlClient,
		usecases.Repositories.EregClient,
		usecases.journalforingBatchSize,
	)
}

func (usecases *Usecases) NewStatusEndringPublisher() statusendring.Publisher {
	return statusendring.NewPublisher(
		usecases.NewExecutorFactory(),
		usecases.NewTransactionFactory(),
		usecases.Repositories.DbRepository,
		usecases.Repositories.StatusEndringProducer,
		usecases.Repositories.Clock,
		0,
	)
}

func (usecases *Usecases) NewOutdatedSweeper() outdated.Sweeper {
	return outdated.NewSweeper(
		usecases.NewExecutorFactory(),
		usecases.NewTransactionFactory(),
		usecases.Repositories.DbRepository,
		usecases.NewDialogmoteUsecase(),
		usecases.Repositories.Clock,
		usecases.outdatedCutoffMonths,
		0,
	)
}
