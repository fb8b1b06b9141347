package kafkamodels

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/navikt/isdialogmote-sub002/models"
)

const (
	esyfovarselPrefixArbeidstaker  = "SM"
	esyfovarselPrefixNarmesteLeder = "NL"
)

// KEsyfovarselHendelse is a notification request read by esyfovarsel, which owns the digital
// mailbox of the arbeidstaker and the notifications to the narmeste leder.
type KEsyfovarselHendelse struct {
	Type             string            `json:"type"`
	Ferdigstill      bool              `json:"ferdigstill"`
	Data             KEsyfovarselData  `json:"data"`
	ArbeidstakerFnr  string            `json:"arbeidstakerFnr"`
	NarmesteLederFnr *string           `json:"narmesteLederFnr,omitempty"`
	Orgnummer        *string           `json:"orgnummer,omitempty"`
	Kanal            string            `json:"kanal"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

type KEsyfovarselData struct {
	VarselUuid     string `json:"varselUuid"`
	DialogmoteUuid string `json:"dialogmoteUuid"`
	PdfId          string `json:"journalpostPdfId"`
	Fritekst       string `json:"fritekst,omitempty"`
}

func esyfovarselType(prefix string, varselType models.VarselType) string {
	switch varselType {
	case models.VarselTypeInvited:
		return prefix + "_DIALOGMOTE_INNKALT"
	case models.VarselTypeRescheduled:
		return prefix + "_DIALOGMOTE_NYTT_TID_STED"
	case models.VarselTypeCancelled:
		return prefix + "_DIALOGMOTE_AVLYST"
	case models.VarselTypeMinutes:
		return prefix + "_DIALOGMOTE_REFERAT"
	}
	return fmt.Sprintf("%s_DIALOGMOTE_%s", prefix, varselType)
}

// AdaptEsyfovarselHendelse builds the hendelse for a DIGITAL or NARMESTE_LEDER delivery.
func AdaptEsyfovarselHendelse(delivery models.VarselDelivery) (KEsyfovarselHendelse, error) {
	hendelse := KEsyfovarselHendelse{
		Data: KEsyfovarselData{
			VarselUuid:     delivery.VarselUuid.String(),
			DialogmoteUuid: delivery.DialogmoteUuid.String(),
			PdfId:          delivery.PdfId.String(),
			Fritekst:       delivery.Fritekst,
		},
		ArbeidstakerFnr: delivery.Personident,
		Kanal:           string(delivery.Channel),
	}

	switch delivery.Channel {
	case models.DeliveryChannelDigital:
		hendelse.Type = esyfovarselType(esyfovarselPrefixArbeidstaker, delivery.Type)
		hendelse.Ferdigstill = !delivery.Type.IsAnswerable()
	case models.DeliveryChannelNarmesteLeder:
		if delivery.NarmesteLeder == nil {
			return KEsyfovarselHendelse{}, errors.Newf("varsel %s has no narmeste leder", delivery.VarselUuid)
		}
		hendelse.Type = esyfovarselType(esyfovarselPrefixNarmesteLeder, delivery.Type)
		hendelse.Ferdigstill = !delivery.Type.IsAnswerable()
		hendelse.NarmesteLederFnr = &delivery.NarmesteLeder.Personident
		hendelse.Orgnummer = &delivery.Virksomhetsnummer
	default:
		return KEsyfovarselHendelse{}, errors.Newf("channel %s is not delivered through esyfovarsel", delivery.Channel)
	}
	return hendelse, nil
}
