package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/navikt/isdialogmote-sub002/models"
)

type ConsentLookup struct {
	mock.Mock
}

func (m *ConsentLookup) HasDigitalConsent(ctx context.Context, personident string) (bool, error) {
	args := m.Called(ctx, personident)
	return args.Bool(0), args.Error(1)
}

type NarmesteLederLookup struct {
	mock.Mock
}

func (m *NarmesteLederLookup) ActiveNarmesteLeder(
	ctx context.Context,
	personident string,
	virksomhetsnummer string,
) (*models.NarmesteLeder, error) {
	args := m.Called(ctx, personident, virksomhetsnummer)
	leder, _ := args.Get(0).(*models.NarmesteLeder)
	return leder, args.Error(1)
}

type TilfelleLookup struct {
	mock.Mock
}

func (m *TilfelleLookup) TilfelleStart(ctx context.Context, personident string) (*time.Time, error) {
	args := m.Called(ctx, personident)
	start, _ := args.Get(0).(*time.Time)
	return start, args.Error(1)
}

type PersonNameLookup struct {
	mock.Mock
}

func (m *PersonNameLookup) PersonName(ctx context.Context, personident string) (string, error) {
	args := m.Called(ctx, personident)
	return args.String(0), args.Error(1)
}

type OrganizationNameLookup struct {
	mock.Mock
}

func (m *OrganizationNameLookup) OrganizationName(ctx context.Context, virksomhetsnummer string) (string, error) {
	args := m.Called(ctx, virksomhetsnummer)
	return args.String(0), args.Error(1)
}
