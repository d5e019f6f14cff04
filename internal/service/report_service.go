// backend-go/internal/service/report_service.go
package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/export"
	"github.com/andresuchdata/tariff-risk/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ReportService builds CSV and PDF exports from the current catalog.
type ReportService struct {
	catalog *CatalogService
	now     func() time.Time
}

func NewReportService(catalog *CatalogService, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{catalog: catalog, now: now}
}

func (s *ReportService) HighRiskSKUs() export.Artifact {
	t := export.HighRiskSKUs(s.catalog.Catalog().SKUs())
	return export.CSVArtifact(export.HighRiskSKUsFilename, t)
}

func (s *ReportService) CategoryAnalysis() export.Artifact {
	c := s.catalog.Catalog()
	t := export.CategoryAnalysis(c.Categories(), c.SKUs())
	return export.CSVArtifact(export.CategoryAnalysisFilename, t)
}

func (s *ReportService) SupplierAlternatives() export.Artifact {
	t := export.SupplierAlternatives(s.catalog.Catalog().Suppliers())
	return export.CSVArtifact(export.SupplierAlternativesFilename, t)
}

func (s *ReportService) ExecutiveSummary() (export.Artifact, error) {
	c := s.catalog.Catalog()
	doc := export.ExecutiveSummary(c.SKUs(), c.Categories())
	return export.PDFRenderer{CreatedAt: s.now()}.PDFArtifact(doc)
}

// SourcingDocument lays out the per-SKU report without rendering it.
func (s *ReportService) SourcingDocument(skuID string) (export.Document, error) {
	sku, err := s.catalog.SKU(skuID)
	if err != nil {
		return export.Document{}, err
	}
	return export.SourcingReport(sku, s.catalog.Catalog().Suppliers(), s.now()), nil
}

func (s *ReportService) SourcingReport(skuID string) (export.Artifact, error) {
	doc, err := s.SourcingDocument(skuID)
	if err != nil {
		return export.Artifact{}, err
	}
	return export.PDFRenderer{CreatedAt: s.now()}.PDFArtifact(doc)
}

// All builds every portfolio export plus one sourcing report per listed SKU,
// concurrently. Results keep a fixed order: the three CSVs, the summary, then
// the sourcing reports in argument order.
func (s *ReportService) All(ctx context.Context, skuIDs []string) ([]export.Artifact, error) {
	out := make([]export.Artifact, 4+len(skuIDs))
	out[0] = s.HighRiskSKUs()
	out[1] = s.CategoryAnalysis()
	out[2] = s.SupplierAlternatives()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.ExecutiveSummary()
		out[3] = a
		return err
	})
	for i, id := range skuIDs {
		g.Go(func() error {
			a, err := s.SourcingReport(id)
			if err != nil {
				return fmt.Errorf("sourcing report %s: %w", id, err)
			}
			out[4+i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Publish uploads artifacts under prefix, at most four at a time.
func (s *ReportService) Publish(ctx context.Context, store storage.ObjectStorage, prefix string, artifacts []export.Artifact) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, a := range artifacts {
		g.Go(func() error {
			key := path.Join(prefix, a.Filename)
			if err := store.UploadObject(ctx, key, a.Data, a.ContentType); err != nil {
				return err
			}
			log.Info().Str("key", key).Int("bytes", len(a.Data)).Msg("export published")
			return nil
		})
	}
	return g.Wait()
}
