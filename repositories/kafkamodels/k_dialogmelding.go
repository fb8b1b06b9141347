package kafkamodels

import (
	"github.com/navikt/isdialogmote-sub002/models"
)

// KDialogmeldingBestilling asks isdialogmelding to send a dialogmelding to the behandler.
type KDialogmeldingBestilling struct {
	BestillingUuid        string `json:"dialogmeldingUuid"`
	BehandlerRef          string `json:"behandlerRef"`
	Personident           string `json:"personIdent"`
	DialogmeldingType     string `json:"dialogmeldingType"`
	DialogmeldingKode     int    `json:"dialogmeldingKode"`
	DialogmeldingKodeverk string `json:"dialogmeldingKodeverk"`
	DialogmoteUuid        string `json:"dialogmeldingRefConversation"`
	Tekst                 string `json:"dialogmeldingTekst"`
	Vedlegg               []byte `json:"dialogmeldingVedlegg"`
}

// Codes of the DIALOGMOTE kodeverk.
const (
	dialogmeldingKodeInnkalling = 1
	dialogmeldingKodeEndring    = 2
	dialogmeldingKodeReferat    = 9
	dialogmeldingKodeAvlysning  = 4
)

func AdaptDialogmeldingBestilling(delivery models.VarselDelivery) KDialogmeldingBestilling {
	kode := dialogmeldingKodeInnkalling
	kodeverk := "DIALOGMOTE"
	meldingType := "DIALOG_FORESPORSEL"
	switch delivery.Type {
	case models.VarselTypeRescheduled:
		kode = dialogmeldingKodeEndring
	case models.VarselTypeCancelled:
		kode = dialogmeldingKodeAvlysning
		meldingType = "DIALOG_NOTAT"
		kodeverk = "HENVENDELSE"
	case models.VarselTypeMinutes:
		kode = dialogmeldingKodeReferat
		meldingType = "DIALOG_NOTAT"
		kodeverk = "HENVENDELSE"
	}
	return KDialogmeldingBestilling{
		BestillingUuid:        delivery.VarselUuid.String(),
		BehandlerRef:          delivery.BehandlerRef,
		Personident:           delivery.Personident,
		DialogmeldingType:     meldingType,
		DialogmeldingKode:     kode,
		DialogmeldingKodeverk: kodeverk,
		DialogmoteUuid:        delivery.DialogmoteUuid.String(),
		Tekst:                 delivery.Fritekst,
		Vedlegg:               delivery.Pdf,
	}
}
