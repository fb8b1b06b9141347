package repositories

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"gocloud.dev/blob"
	"gocloud.dev/pubsub"
	"golang.org/x/time/rate"

	"github.com/navikt/isdialogmote-sub002/infra"
	"github.com/navikt/isdialogmote-sub002/repositories/clock"
)

type Repositories struct {
	ExecutorGetter            ExecutorGetter
	DbRepository              *DbRepository
	PdfRepository             PdfRepository
	PdfgenClient              PdfgenClient
	DokarkivClient            DokarkivClient
	PdlClient                 PdlClient
	EregClient                EregClient
	OppfolgingstilfelleClient OppfolgingstilfelleClient
	KrrClient                 KrrClient
	NarmesteLederClient       NarmesteLederClient
	AltinnClient              AltinnClient
	BrevClient                BrevClient
	EsyfovarselProducer       EsyfovarselProducer
	DialogmeldingProducer     DialogmeldingProducer
	StatusEndringProducer     StatusEndringProducer
	Clock                     clock.Clock
}

type Topics struct {
	Esyfovarsel   *pubsub.Topic
	Dialogmelding *pubsub.Topic
	StatusEndring *pubsub.Topic
}

// HttpClients is the authenticated http client of every collaborating system.
type HttpClients struct {
	Pdfgen              *http.Client
	Dokarkiv            *http.Client
	Pdl                 *http.Client
	Ereg                *http.Client
	Oppfolgingstilfelle *http.Client
	Krr                 *http.Client
	NarmesteLeder       *http.Client
	Altinn              *http.Client
	Brev                *http.Client
}

func NewRepositories(
	pool *pgxpool.Pool,
	bucket *blob.Bucket,
	topics Topics,
	clientsConfig infra.ClientsConfig,
	httpClients HttpClients,
) Repositories {

	dokarkivRate := rate.Limit(clientsConfig.DokarkivRatePerSecond)
	if clientsConfig.DokarkivRatePerSecond <= 0 {
		dokarkivRate = rate.Inf
	}

	return Repositories{
		ExecutorGetter:            NewExecutorGetter(pool),
		DbRepository:              NewDbRepository(),
		PdfRepository:             NewPdfRepository(bucket),
		PdfgenClient:              NewPdfgenClient(clientsConfig.PdfgenUrl, httpClients.Pdfgen),
		DokarkivClient:            NewDokarkivClient(clientsConfig.DokarkivUrl, httpClients.Dokarkiv, rate.NewLimiter(dokarkivRate, 1)),
		PdlClient:                 NewPdlClient(clientsConfig.PdlUrl, httpClients.Pdl),
		EregClient:                NewEregClient(clientsConfig.EregUrl, httpClients.Ereg),
		OppfolgingstilfelleClient: NewOppfolgingstilfelleClient(clientsConfig.OppfolgingstilfelleUrl, httpClients.Oppfolgingstilfelle),
		KrrClient:                 NewKrrClient(clientsConfig.KrrUrl, httpClients.Krr),
		NarmesteLederClient:       NewNarmesteLederClient(clientsConfig.NarmesteLederUrl, httpClients.NarmesteLeder),
		AltinnClient:              NewAltinnClient(clientsConfig.AltinnUrl, httpClients.Altinn),
		BrevClient:                NewBrevClient(clientsConfig.BrevUrl, httpClients.Brev),
		EsyfovarselProducer:       NewEsyfovarselProducer(topics.Esyfovarsel),
		DialogmeldingProducer:     NewDialogmeldingProducer(topics.Dialogmelding),
		StatusEndringProducer:     NewStatusEndringProducer(topics.StatusEndring),
		Clock:                     clock.New(),
	}
}
