package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/navikt/isdialogmote-sub002/models"
)

type PdfRenderer struct {
	mock.Mock
}

func (m *PdfRenderer) RenderPdf(ctx context.Context, template string, components []models.DocumentComponent) ([]byte, error) {
	args := m.Called(ctx, template, components)
	return args.Get(0).([]byte), args.Error(1)
}

type PdfStore struct {
	mock.Mock
}

func (m *PdfStore) StorePdf(ctx context.Context, pdf []byte) (uuid.UUID, error) {
	args := m.Called(ctx, pdf)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *PdfStore) GetPdf(ctx context.Context, pdfId uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, pdfId)
	return args.Get(0).([]byte), args.Error(1)
}
