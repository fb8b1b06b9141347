package repositories

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/navikt/isdialogmote-sub002/models"
	"github.com/navikt/isdialogmote-sub002/utils"
)

// PdfRepository stores the rendered documents. The pdf id is the only reference kept in the database.
type PdfRepository struct {
	bucket *blob.Bucket
}

func NewPdfRepository(bucket *blob.Bucket) PdfRepository {
	return PdfRepository{bucket: bucket}
}

func pdfKey(pdfId uuid.UUID) string {
	return fmt.Sprintf("pdf/%s.pdf", pdfId)
}

func (repo PdfRepository) StorePdf(ctx context.Context, pdf []byte) (uuid.UUID, error) {
	pdfId := uuid.New()

	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repositories.PdfRepository.StorePdf",
		trace.WithAttributes(attribute.String("pdf_id", pdfId.String())))
	defer span.End()

	err := repo.bucket.WriteAll(ctx, pdfKey(pdfId), pdf, &blob.WriterOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "failed to store pdf %s", pdfId)
	}
	return pdfId, nil
}

func (repo PdfRepository) GetPdf(ctx context.Context, pdfId uuid.UUID) ([]byte, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "repositories.PdfRepository.GetPdf",
		trace.WithAttributes(attribute.String("pdf_id", pdfId.String())))
	defer span.End()

	pdf, err := repo.bucket.ReadAll(ctx, pdfKey(pdfId))
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, errors.Wrapf(models.NotFoundError, "pdf %s does not exist", pdfId)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read pdf %s", pdfId)
	}
	return pdf, nil
}
