package cmd

import (
	"time"

	"github.com/navikt/isdialogmote-sub002/infra"
	"github.com/navikt/isdialogmote-sub002/utils"
)

const appName = "isdialogmote"

type CompiledConfig struct {
	Version string
}

type appConfig struct {
	env           string
	loggingFormat string
	sentryDsn     string
	probePort     string
	profilingMode string
	gcpProjectId  string

	pg        infra.PgConfig
	token     infra.TokenConfig
	clients   infra.ClientsConfig
	pubsub    infra.PubSubConfig
	blob      infra.BlobConfig
	jobs      infra.JobsConfig
	telemetry infra.TelemetryConfiguration
}

func pgConfigFromEnv() infra.PgConfig {
	return infra.PgConfig{
		ConnectionString:    utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:            utils.GetEnv("PG_DATABASE", "isdialogmote"),
		DbConnectWithSocket: utils.GetEnv("PG_CONNECT_WITH_SOCKET", false),
		Hostname:            utils.GetEnv("PG_HOSTNAME", ""),
		Password:            utils.GetEnv("PG_PASSWORD", ""),
		Port:                utils.GetEnv("PG_PORT", "5432"),
		User:                utils.GetEnv("PG_USER", ""),
		MaxPoolConnections:  utils.GetEnv("PG_MAX_POOL_SIZE", infra.MAX_CONNECTIONS),
		SslMode:             utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
}

func readAppConfig() appConfig {
	return appConfig{
		env:           utils.GetEnv("ENV", "development"),
		loggingFormat: utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:     utils.GetEnv("SENTRY_DSN", ""),
		probePort:     utils.GetEnv("PROBE_PORT", "8080"),
		profilingMode: utils.GetEnv("DEBUG_PROFILING_MODE", ""),
		gcpProjectId:  utils.GetEnv("GCP_TEAM_PROJECT_ID", ""),

		pg: pgConfigFromEnv(),
		token: infra.TokenConfig{
			TokenUrl:     utils.GetEnv("AZURE_OPENID_CONFIG_TOKEN_ENDPOINT", ""),
			ClientId:     utils.GetEnv("AZURE_APP_CLIENT_ID", ""),
			ClientSecret: utils.GetEnv("AZURE_APP_CLIENT_SECRET", ""),
		},
		clients: infra.ClientsConfig{
			PdfgenUrl:                utils.GetRequiredEnv[string]("ISDIALOGMOTEPDFGEN_URL"),
			DokarkivUrl:              utils.GetRequiredEnv[string]("DOKARKIV_URL"),
			DokarkivScope:            utils.GetEnv("DOKARKIV_CLIENT_ID", ""),
			DokarkivRatePerSecond:    utils.GetEnv("DOKARKIV_RATE_PER_SECOND", 10),
			PdlUrl:                   utils.GetRequiredEnv[string]("PDL_URL"),
			PdlScope:                 utils.GetEnv("PDL_CLIENT_ID", ""),
			EregUrl:                  utils.GetRequiredEnv[string]("EREG_URL"),
			OppfolgingstilfelleUrl:   utils.GetRequiredEnv[string]("ISOPPFOLGINGSTILFELLE_URL"),
			OppfolgingstilfelleScope: utils.GetEnv("ISOPPFOLGINGSTILFELLE_CLIENT_ID", ""),
			KrrUrl:                   utils.GetRequiredEnv[string]("KRR_URL"),
			KrrScope:                 utils.GetEnv("KRR_CLIENT_ID", ""),
			NarmesteLederUrl:         utils.GetRequiredEnv[string]("NARMESTELEDER_URL"),
			NarmesteLederScope:       utils.GetEnv("NARMESTELEDER_CLIENT_ID", ""),
			AltinnUrl:                utils.GetRequiredEnv[string]("ALTINN_URL"),
			AltinnScope:              utils.GetEnv("ALTINN_CLIENT_ID", ""),
			BrevUrl:                  utils.GetRequiredEnv[string]("BREV_URL"),
			BrevScope:                utils.GetEnv("BREV_CLIENT_ID", ""),
			Timeout:                  utils.GetEnv("CLIENT_TIMEOUT", 30*time.Second),
		},
		pubsub: infra.PubSubConfig{
			EsyfovarselTopicUrl:   utils.GetRequiredEnv[string]("ESYFOVARSEL_TOPIC_URL"),
			DialogmeldingTopicUrl: utils.GetRequiredEnv[string]("DIALOGMELDING_TOPIC_URL"),
			StatusEndringTopicUrl: utils.GetRequiredEnv[string]("STATUS_ENDRING_TOPIC_URL"),
		},
		blob: infra.BlobConfig{
			PdfBucketUrl: utils.GetRequiredEnv[string]("PDF_BUCKET_URL"),
		},
		jobs: infra.JobsConfig{
			JournalforingBatchSize:     utils.GetEnv("JOURNALFORING_BATCH_SIZE", 20),
			JournalforingInterval:      utils.GetEnv("JOURNALFORING_INTERVAL", time.Minute),
			StatusEndringInterval:      utils.GetEnv("STATUS_ENDRING_INTERVAL", time.Minute),
			VarselDeliveryInterval:     utils.GetEnv("VARSEL_DELIVERY_INTERVAL", 5*time.Minute),
			VarselDeliveryGracePeriod:  utils.GetEnv("VARSEL_DELIVERY_GRACE_PERIOD", 10*time.Minute),
			OutdatedDialogmoteInterval: utils.GetEnv("OUTDATED_DIALOGMOTE_INTERVAL", 24*time.Hour),
			OutdatedCutoffMonths:       utils.GetEnv("OUTDATED_DIALOGMOTE_CUTOFF_MONTHS", 1),
			JournalforingCron:          utils.GetEnv("JOURNALFORING_CRON", ""),
			StatusEndringCron:          utils.GetEnv("STATUS_ENDRING_CRON", ""),
			VarselDeliveryCron:         utils.GetEnv("VARSEL_DELIVERY_CRON", ""),
			OutdatedDialogmoteCron:     utils.GetEnv("OUTDATED_DIALOGMOTE_CRON", ""),
		},
		telemetry: infra.TelemetryConfiguration{
			Enabled:         utils.GetEnv("ENABLE_TRACING", false),
			ApplicationName: appName,
			SamplingRate:    infra.DEFAULT_SAMPLING_RATE,
		},
	}
}
