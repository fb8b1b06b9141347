package varsel

import (
	"github.com/cockroachdb/errors"

	"github.com/navikt/isdialogmote-sub002/models"
)

// Channels holds one delivery channel per DeliveryChannel value.
type Channels struct {
	Digital       DeliveryChannel
	Paper         DeliveryChannel
	NarmesteLeder DeliveryChannel
	Altinn        DeliveryChannel
	Dialogmelding DeliveryChannel
}

func (c Channels) For(channel models.DeliveryChannel) (DeliveryChannel, error) {
	var found DeliveryChannel
	switch channel {
	case models.DeliveryChannelDigital:
		found = c.Digital
	case models.DeliveryChannelPaper:
		found = c.Paper
	case models.DeliveryChannelNarmesteLeder:
		found = c.NarmesteLeder
	case models.DeliveryChannelAltinn:
		found = c.Altinn
	case models.DeliveryChannelDialogmelding:
		found = c.Dialogmelding
	}
	if found == nil {
		return nil, errors.Newf("no delivery channel configured for %s", channel)
	}
	return found, nil
}
