package cmd

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"gocloud.dev/blob"
	"gocloud.dev/pubsub"

	"github.com/navikt/isdialogmote-sub002/infra"
	"github.com/navikt/isdialogmote-sub002/repositories"
	"github.com/navikt/isdialogmote-sub002/usecases"
	"github.com/navikt/isdialogmote-sub002/utils"
)

// dependencies are the resources shared by the worker and the scheduler processes.
type dependencies struct {
	logger    *slog.Logger
	telemetry infra.TelemetryRessources
	pool      *pgxpool.Pool
	bucket    *blob.Bucket
	topics    repositories.Topics
	usecases  usecases.Usecases
}

func (d dependencies) close(ctx context.Context) {
	for _, topic := range []*pubsub.Topic{d.topics.Esyfovarsel, d.topics.Dialogmelding, d.topics.StatusEndring} {
		if topic == nil {
			continue
		}
		if err := topic.Shutdown(ctx); err != nil {
			d.logger.WarnContext(ctx, "could not shut down topic", "error", err.Error())
		}
	}
	if d.bucket != nil {
		if err := d.bucket.Close(); err != nil {
			d.logger.WarnContext(ctx, "could not close pdf bucket", "error", err.Error())
		}
	}
	if d.pool != nil {
		d.pool.Close()
	}
	if err := d.telemetry.Shutdown(ctx); err != nil {
		d.logger.WarnContext(ctx, "could not shut down telemetry", "error", err.Error())
	}
}

func openTopics(ctx context.Context, config infra.PubSubConfig) (repositories.Topics, error) {
	var topics repositories.Topics
	var err error
	if topics.Esyfovarsel, err = infra.OpenTopic(ctx, config.EsyfovarselTopicUrl); err != nil {
		return topics, err
	}
	if topics.Dialogmelding, err = infra.OpenTopic(ctx, config.DialogmeldingTopicUrl); err != nil {
		return topics, err
	}
	if topics.StatusEndring, err = infra.OpenTopic(ctx, config.StatusEndringTopicUrl); err != nil {
		return topics, err
	}
	return topics, nil
}

func httpClients(ctx context.Context, token infra.TokenConfig, config infra.ClientsConfig) repositories.HttpClients {
	return repositories.HttpClients{
		Pdfgen:              infra.NewSystemHttpClient(ctx, token, "", config.Timeout),
		Dokarkiv:            infra.NewSystemHttpClient(ctx, token, config.DokarkivScope, config.Timeout),
		Pdl:                 infra.NewSystemHttpClient(ctx, token, config.PdlScope, config.Timeout),
		Ereg:                infra.NewSystemHttpClient(ctx, token, "", config.Timeout),
		Oppfolgingstilfelle: infra.NewSystemHttpClient(ctx, token, config.OppfolgingstilfelleScope, config.Timeout),
		Krr:                 infra.NewSystemHttpClient(ctx, token, config.KrrScope, config.Timeout),
		NarmesteLeder:       infra.NewSystemHttpClient(ctx, token, config.NarmesteLederScope, config.Timeout),
		Altinn:              infra.NewSystemHttpClient(ctx, token, config.AltinnScope, config.Timeout),
		Brev:                infra.NewSystemHttpClient(ctx, token, config.BrevScope, config.Timeout),
	}
}

// setupDependencies opens every resource in order. On error the resources opened so far are returned
// so that the caller can close them.
func setupDependencies(ctx context.Context, config appConfig, logger *slog.Logger, apiVersion string) (dependencies, error) {
	deps := dependencies{logger: logger, telemetry: infra.NoopTelemetry()}

	telemetry, err := infra.InitTelemetry(config.telemetry, apiVersion)
	if err != nil {
		// the process runs without tracing
		utils.LogAndReportSentryError(ctx, err)
	} else {
		deps.telemetry = telemetry
	}

	deps.pool, err = infra.NewPostgresConnectionPool(ctx, config.pg.GetConnectionString(), config.pg.MaxPoolConnections)
	if err != nil {
		return deps, err
	}

	deps.bucket, err = infra.OpenBucket(ctx, config.blob.PdfBucketUrl)
	if err != nil {
		return deps, err
	}

	deps.topics, err = openTopics(ctx, config.pubsub)
	if err != nil {
		return deps, errors.Wrap(err, "could not open the topics")
	}

	repos := repositories.NewRepositories(
		deps.pool,
		deps.bucket,
		deps.topics,
		config.clients,
		httpClients(ctx, config.token, config.clients),
	)
	deps.usecases = usecases.NewUsecases(repos,
		usecases.WithJournalforingBatchSize(config.jobs.JournalforingBatchSize),
		usecases.WithOutdatedCutoffMonths(config.jobs.OutdatedCutoffMonths),
		usecases.WithVarselDeliveryGracePeriod(config.jobs.VarselDeliveryGracePeriod),
	)
	return deps, nil
}
