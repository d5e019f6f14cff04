package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const pdfFont = "Helvetica"

// PDFRenderer draws a Document with fpdf.
type PDFRenderer struct {
	// CreatedAt is stamped into the PDF metadata. Zero means now.
	CreatedAt time.Time
}

// Render writes the PDF bytes of doc to w.
func (r PDFRenderer) Render(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetAutoPageBreak(false, BottomMargin)
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	for _, in := range doc.Instructions {
		if in.Kind == KindPageBreak {
			pdf.AddPage()
			continue
		}

		pdf.SetFont(pdfFont, "", in.FontSize)
		pdf.SetTextColor(in.Color.R, in.Color.G, in.Color.B)

		switch in.Kind {
		case KindParagraph:
			lh := LineHeight(in.FontSize)
			for i, line := range in.Lines {
				pdf.Text(in.X, in.Y+float64(i)*lh, tr(line))
			}
		case KindBullet:
			pdf.Text(in.X, in.Y, tr("• "+in.Text))
		default:
			pdf.Text(in.X, in.Y, tr(in.Content()))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render %s: %w", doc.Filename, err)
	}
	return nil
}

// PDFArtifact renders doc into an Artifact.
func (r PDFRenderer) PDFArtifact(doc Document) (Artifact, error) {
	var buf bytes.Buffer
	if err := r.Render(doc, &buf); err != nil {
		return Artifact{}, err
	}
	return Artifact{Filename: doc.Filename, ContentType: ContentTypePDF, Data: buf.Bytes()}, nil
}
