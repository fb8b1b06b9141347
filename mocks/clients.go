package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/navikt/isdialogmote-sub002/models"
)

type DeliveryChannel struct {
	mock.Mock
}

func (m *DeliveryChannel) Deliver(ctx context.Context, delivery models.VarselDelivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

type Archive struct {
	mock.Mock
}

func (m *Archive) Archive(ctx context.Context, request models.JournalpostRequest) (int, error) {
	args := m.Called(ctx, request)
	return args.Int(0), args.Error(1)
}

type StatusEndringProducer struct {
	mock.Mock
}

func (m *StatusEndringProducer) PublishStatusEndring(ctx context.Context, endring models.KDialogmoteStatusEndring) error {
	args := m.Called(ctx, endring)
	return args.Error(0)
}

type VarselDispatcher struct {
	mock.Mock
}

func (m *VarselDispatcher) Dispatch(ctx context.Context, event models.DialogmoteEvent) models.DispatchResult {
	args := m.Called(ctx, event)
	return args.Get(0).(models.DispatchResult)
}

type DialogmoteCloser struct {
	mock.Mock
}

func (m *DialogmoteCloser) CloseDialogmote(ctx context.Context, dialogmoteUuid uuid.UUID, cutoff time.Time) error {
	args := m.Called(ctx, dialogmoteUuid, cutoff)
	return args.Error(0)
}
