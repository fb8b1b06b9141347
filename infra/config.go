package infra

import (
	"fmt"
	"time"
)

type PgConfig struct {
	ConnectionString    string
	Database            string
	DbConnectWithSocket bool
	Hostname            string
	Password            string
	Port                string
	User                string
	MaxPoolConnections  int
	SslMode             string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	connectionString := fmt.Sprintf("host=%s user=%s password=%s database=%s sslmode=%s",
		config.Hostname, config.User, config.Password, config.Database, config.SslMode)
	if !config.DbConnectWithSocket {
		// the cloud sql proxy is reached through a unix socket, without port
		connectionString = fmt.Sprintf("%s port=%s", connectionString, config.Port)
	}
	return connectionString
}

// TokenConfig is the client credentials grant used to call the collaborating systems.
type TokenConfig struct {
	TokenUrl     string
	ClientId     string
	ClientSecret string
}

type ClientsConfig struct {
	PdfgenUrl                string
	DokarkivUrl              string
	DokarkivScope            string
	DokarkivRatePerSecond    int
	PdlUrl                   string
	PdlScope                 string
	EregUrl                  string
	OppfolgingstilfelleUrl   string
	OppfolgingstilfelleScope string
	KrrUrl                   string
	KrrScope                 string
	NarmesteLederUrl         string
	NarmesteLederScope       string
	AltinnUrl                string
	AltinnScope              string
	BrevUrl                  string
	BrevScope                string
	Timeout                  time.Duration
}

type PubSubConfig struct {
	EsyfovarselTopicUrl   string
	DialogmeldingTopicUrl string
	StatusEndringTopicUrl string
}

type BlobConfig struct {
	PdfBucketUrl string
}

type JobsConfig struct {
	JournalforingBatchSize     int
	JournalforingInterval      time.Duration
	StatusEndringInterval      time.Duration
	VarselDeliveryInterval     time.Duration
	VarselDeliveryGracePeriod  time.Duration
	OutdatedDialogmoteInterval time.Duration
	OutdatedCutoffMonths       int

	// cron expressions of the job scheduler
	JournalforingCron      string
	StatusEndringCron      string
	VarselDeliveryCron     string
	OutdatedDialogmoteCron string
}

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
	SamplingRate    float64
}
