package repositories

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/navikt/isdialogmote-sub002/models"
)

const downstreamUrl = "http://downstream.local"

// bodyMatches checks the json request body with gjson paths and restores the body for the other matchers.
func bodyMatches(expected map[string]string) gock.MatchFunc {
	return func(req *http.Request, _ *gock.Request) (bool, error) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return false, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		for path, value := range expected {
			if gjson.GetBytes(body, path).String() != value {
				return false, nil
			}
		}
		return true, nil
	}
}

func TestPdfgenClient_RenderPdf(t *testing.T) {
	defer gock.Off()
	client := NewPdfgenClient(downstreamUrl, &http.Client{})

	gock.New(downstreamUrl).
		Post("/api/v1/genpdf/isdialogmote/innkalling-arbeidstaker").
		MatchHeader("Accept", "application/pdf").
		MatchHeader(navCallIdHeader, "call-1").
		AddMatcher(bodyMatches(map[string]string{
			"documentComponents.0.type":    "PARAGRAPH",
			"documentComponents.0.texts.0": "Velkommen til dialogmøte",
		})).
		Reply(http.StatusOK).
		BodyString("%PDF-1.7")

	pdf, err := client.RenderPdf(WithCallId(context.Background(), "call-1"), "innkalling-arbeidstaker",
		[]models.DocumentComponent{{Type: "PARAGRAPH", Texts: []string{"Velkommen til dialogmøte"}}})

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)
	assert.True(t, gock.IsDone())

	gock.New(downstreamUrl).
		Post("/api/v1/genpdf/isdialogmote/referat").
		Reply(http.StatusInternalServerError)

	_, err = client.RenderPdf(context.Background(), "referat", nil)
	assert.ErrorIs(t, err, models.TransientExternalError)
}

func TestDokarkivClient_Archive(t *testing.T) {
	defer gock.Off()
	client := NewDokarkivClient(downstreamUrl, &http.Client{}, rate.NewLimiter(rate.Inf, 1))
	request := models.JournalpostRequest{
		Tittel:             "Innkalling til dialogmøte",
		Brevkode:           "OPPF_DM_INNKALLING",
		Personident:        "12345678912",
		Mottaker:           models.JournalpostMottaker{Id: "912345678", IdType: models.JournalpostIdTypeOrgnr, Navn: "Bedrift AS"},
		EksternReferanseId: uuid.MustParse("7f1c7e1a-2c4b-4d69-9d3e-6c0f1b8f3a21"),
		Kanal:              "ALTINN",
		Pdf:                []byte("%PDF-1.7"),
		DokumentDato:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	tts := []struct {
		name          string
		status        int
		response      map[string]any
		journalpostId int
		wantErr       bool
	}{
		{"created", http.StatusCreated, map[string]any{"journalpostId": 123, "journalpostferdigstilt": true}, 123, false},
		{"already archived", http.StatusConflict, map[string]any{"journalpostId": 456}, 456, false},
		{"no journalpost id", http.StatusOK, map[string]any{}, 0, true},
		{"unavailable", http.StatusServiceUnavailable, map[string]any{}, 0, true},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			gock.New(downstreamUrl).
				Post("/rest/journalpostapi/v1/journalpost").
				MatchParam("forsoekFerdigstill", "true").
				AddMatcher(bodyMatches(map[string]string{
					"eksternReferanseId":      "7f1c7e1a-2c4b-4d69-9d3e-6c0f1b8f3a21",
					"avsenderMottaker.idType": "ORGNR",
					"avsenderMottaker.navn":   "Bedrift AS",
					"bruker.id":               "12345678912",
					"kanal":                   "ALTINN",
					"tema":                    "OPP",
					"datoDokument":            "2024-03-01T09:00:00",
				})).
				Reply(tt.status).
				JSON(tt.response)

			journalpostId, err := client.Archive(context.Background(), request)

			if tt.wantErr {
				assert.ErrorIs(t, err, models.TransientExternalError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.journalpostId, journalpostId)
		})
	}
	assert.True(t, gock.IsDone())
}

func TestKrrClient_HasDigitalConsent(t *testing.T) {
	defer gock.Off()
	client := NewKrrClient(downstreamUrl, &http.Client{})

	gock.New(downstreamUrl).
		Post("/rest/v1/personer").
		Times(4).
		Reply(http.StatusOK).
		JSON(map[string]any{
			"personer": map[string]any{
				"11111111111": map[string]any{"aktiv": true, "kanVarsles": true, "reservert": false},
				"22222222222": map[string]any{"aktiv": true, "kanVarsles": true, "reservert": true},
			},
			"feil": map[string]string{"33333333333": "person_ikke_funnet"},
		})

	consent, err := client.HasDigitalConsent(context.Background(), "11111111111")
	require.NoError(t, err)
	assert.True(t, consent)

	consent, err = client.HasDigitalConsent(context.Background(), "22222222222")
	require.NoError(t, err)
	assert.False(t, consent)

	_, err = client.HasDigitalConsent(context.Background(), "33333333333")
	assert.ErrorIs(t, err, models.TransientExternalError)

	consent, err = client.HasDigitalConsent(context.Background(), "44444444444")
	require.NoError(t, err)
	assert.False(t, consent)
}

func TestPdlClient_PersonName(t *testing.T) {
	defer gock.Off()
	client := NewPdlClient(downstreamUrl, &http.Client{})

	gock.New(downstreamUrl).
		Post("/graphql").
		MatchHeader("Behandlingsnummer", "B426").
		AddMatcher(bodyMatches(map[string]string{"variables.ident": "12345678912"})).
		Reply(http.StatusOK).
		JSON(map[string]any{
			"data": map[string]any{
				"hentPerson": map[string]any{
					"navn": []map[string]any{{"fornavn": "OLA", "mellomnavn": nil, "etternavn": "NORDMANN"}},
				},
			},
		})
	gock.New(downstreamUrl).
		Post("/graphql").
		AddMatcher(bodyMatches(map[string]string{"variables.ident": "10987654321"})).
		Reply(http.StatusOK).
		JSON(map[string]any{"errors": []map[string]any{{"message": "Fant ikke person"}}, "data": nil})

	name, err := client.PersonName(context.Background(), "12345678912")
	require.NoError(t, err)
	assert.Equal(t, "Ola Nordmann", name)

	// served from the cache, no second request is mocked
	name, err = client.PersonName(context.Background(), "12345678912")
	require.NoError(t, err)
	assert.Equal(t, "Ola Nordmann", name)

	_, err = client.PersonName(context.Background(), "10987654321")
	assert.ErrorContains(t, err, "Fant ikke person")
	assert.True(t, gock.IsDone())
}

func TestEregClient_OrganizationName(t *testing.T) {
	defer gock.Off()
	client := NewEregClient(downstreamUrl, &http.Client{})

	gock.New(downstreamUrl).
		Get("/ereg/api/v1/organisasjon/912345678").
		Reply(http.StatusOK).
		JSON(map[string]any{"navn": map[string]any{"navnelinje1": "BEDRIFT", "sammensattnavn": "BEDRIFT AS"}})
	gock.New(downstreamUrl).
		Get("/ereg/api/v1/organisasjon/999999999").
		Reply(http.StatusNotFound)

	name, err := client.OrganizationName(context.Background(), "912345678")
	require.NoError(t, err)
	assert.Equal(t, "BEDRIFT AS", name)

	name, err = client.OrganizationName(context.Background(), "999999999")
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestNarmesteLederClient_ActiveNarmesteLeder(t *testing.T) {
	defer gock.Off()
	client := NewNarmesteLederClient(downstreamUrl, &http.Client{})

	gock.New(downstreamUrl).
		Get("/api/system/v1/narmestelederrelasjoner").
		MatchHeader(navPersonidentHeader, "12345678912").
		Times(2).
		Reply(http.StatusOK).
		JSON([]map[string]any{
			{
				"arbeidstakerPersonIdentNumber":  "12345678912",
				"virksomhetsnummer":              "912345678",
				"narmesteLederPersonIdentNumber": "01010112345",
				"narmesteLederNavn":              "Gammel Leder",
				"status":                         "DEAKTIVERT",
			},
			{
				"arbeidstakerPersonIdentNumber":  "12345678912",
				"virksomhetsnummer":              "912345678",
				"narmesteLederPersonIdentNumber": "02020212345",
				"narmesteLederNavn":              "Ny Leder",
				"status":                         "INNMELDT_AKTIV",
			},
		})

	leder, err := client.ActiveNarmesteLeder(context.Background(), "12345678912", "912345678")
	require.NoError(t, err)
	assert.Equal(t, &models.NarmesteLeder{
		Personident:       "02020212345",
		Virksomhetsnummer: "912345678",
		Navn:              "Ny Leder",
	}, leder)

	leder, err = client.ActiveNarmesteLeder(context.Background(), "12345678912", "987654321")
	require.NoError(t, err)
	assert.Nil(t, leder)
}

func TestOppfolgingstilfelleClient_TilfelleStart(t *testing.T) {
	defer gock.Off()
	client := NewOppfolgingstilfelleClient(downstreamUrl, &http.Client{})

	gock.New(downstreamUrl).
		Get("/api/system/v1/oppfolgingstilfelle/personident").
		MatchHeader(navPersonidentHeader, "12345678912").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"personIdent": "12345678912",
			"oppfolgingstilfelleList": []map[string]string{
				{"start": "2023-09-01", "end": "2023-10-15"},
				{"start": "2024-01-15", "end": "2024-06-30"},
			},
		})
	gock.New(downstreamUrl).
		Get("/api/system/v1/oppfolgingstilfelle/personident").
		MatchHeader(navPersonidentHeader, "10987654321").
		Reply(http.StatusOK).
		JSON(map[string]any{"personIdent": "10987654321", "oppfolgingstilfelleList": []any{}})

	start, err := client.TilfelleStart(context.Background(), "12345678912")
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *start)

	start, err = client.TilfelleStart(context.Background(), "10987654321")
	require.NoError(t, err)
	assert.Nil(t, start)
}

func TestAltinnClient_Deliver(t *testing.T) {
	defer gock.Off()
	client := NewAltinnClient(downstreamUrl, &http.Client{})
	delivery := models.VarselDelivery{
		VarselUuid:        uuid.MustParse("2b0c3d43-9d4e-4a0f-8a43-3b1c1ff0d6a5"),
		Type:              models.VarselTypeCancelled,
		Virksomhetsnummer: "912345678",
		Pdf:               []byte("%PDF-1.7"),
	}

	gock.New(downstreamUrl).
		Post("/api/v1/correspondence").
		AddMatcher(bodyMatches(map[string]string{
			"reference":         "2b0c3d43-9d4e-4a0f-8a43-3b1c1ff0d6a5",
			"virksomhetsnummer": "912345678",
			"title":             "Avlysning av dialogmøte",
		})).
		Reply(http.StatusConflict)

	assert.NoError(t, client.Deliver(context.Background(), delivery))

	delivery.Virksomhetsnummer = ""
	assert.ErrorIs(t, client.Deliver(context.Background(), delivery), models.ConstraintViolationError)
	assert.True(t, gock.IsDone())
}

func TestBrevClient_Deliver(t *testing.T) {
	defer gock.Off()
	client := NewBrevClient(downstreamUrl, &http.Client{})

	gock.New(downstreamUrl).
		Post("/api/v1/brev").
		AddMatcher(bodyMatches(map[string]string{
			"personident": "12345678912",
			"tittel":      "Referat fra dialogmøte",
		})).
		Reply(http.StatusCreated)
	gock.New(downstreamUrl).
		Post("/api/v1/brev").
		Reply(http.StatusBadGateway)

	delivery := models.VarselDelivery{
		VarselUuid:  uuid.New(),
		Type:        models.VarselTypeMinutes,
		Personident: "12345678912",
	}
	assert.NoError(t, client.Deliver(context.Background(), delivery))
	assert.ErrorIs(t, client.Deliver(context.Background(), delivery), models.TransientExternalError)
}
