package repositories

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"gocloud.dev/pubsub"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/repositories/kafkamodels"
)

// MessageKeyMetadata is the metadata entry the kafka driver uses as the record key.
const MessageKeyMetadata = "key"

type topicProducer struct {
	name  string
	topic *pubsub.Topic
}

func (p topicProducer) send(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "could not marshal %s message", p.name)
	}
	err = p.topic.Send(ctx, &pubsub.Message{
		Body:     body,
		Metadata: map[string]string{MessageKeyMetadata: key},
	})
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "could not send message on %s", p.name), models.TransientExternalError)
	}
	return nil
}

// EsyfovarselProducer delivers the DIGITAL and NARMESTE_LEDER varsler.
type EsyfovarselProducer struct {
	topicProducer
}

func NewEsyfovarselProducer(topic *pubsub.Topic) EsyfovarselProducer {
	return EsyfovarselProducer{topicProducer{name: "esyfovarsel", topic: topic}}
}

func (p EsyfovarselProducer) Deliver(ctx context.Context, delivery models.VarselDelivery) error {
	hendelse, err := kafkamodels.AdaptEsyfovarselHendelse(delivery)
	if err != nil {
		return errors.Mark(err, models.ConstraintViolationError)
	}
	return p.send(ctx, delivery.VarselUuid.String(), hendelse)
}

// DialogmeldingProducer delivers the varsler of the behandler.
type DialogmeldingProducer struct {
	topicProducer
}

func NewDialogmeldingProducer(topic *pubsub.Topic) DialogmeldingProducer {
	return DialogmeldingProducer{topicProducer{name: "dialogmelding", topic: topic}}
}

func (p DialogmeldingProducer) Deliver(ctx context.Context, delivery models.VarselDelivery) error {
	if delivery.BehandlerRef == "" {
		return errors.Wrapf(models.ConstraintViolationError, "varsel %s has no behandler", delivery.VarselUuid)
	}
	return p.send(ctx, delivery.VarselUuid.String(), kafkamodels.AdaptDialogmeldingBestilling(delivery))
}

// StatusEndringProducer publishes the status endringer, keyed by the dialogmote uuid so that the
// endringer of one dialogmote stay ordered.
type StatusEndringProducer struct {
	topicProducer
}

func NewStatusEndringProducer(topic *pubsub.Topic) StatusEndringProducer {
	return StatusEndringProducer{topicProducer{name: "isdialogmote-dialogmote-statusendring", topic: topic}}
}

func (p StatusEndringProducer) PublishStatusEndring(ctx context.Context, endring models.KDialogmoteStatusEndring) error {
	return p.send(ctx, endring.DialogmoteUuid, endring)
}
