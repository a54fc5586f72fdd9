package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"farmaapp/m/domain"
)

const appFontFamily = "AppFont"

// Exporter turns a filtered item list plus the settings header into a
// paginated A4 PDF.
type Exporter struct {
	log *zap.SugaredLogger
}

// New constructs an Exporter.
func New(log *zap.SugaredLogger) *Exporter {
	return &Exporter{log: log}
}

// Filename returns the export file name for the given timestamp:
// items_export_<YYYYMMDD_HHMMSS>.pdf.
func Filename(now time.Time) string {
	return "items_export_" + now.Format("20060102_150405") + ".pdf"
}

// Export writes the document to path. Rows keep their input order and are
// numbered 1..N. Generation is best-effort: on failure the error is
// returned and a partial file may remain.
func (e *Exporter) Export(items []domain.ItemRow, settings domain.Settings, path string) error {
	pdf, family := e.newDocument()
	pdf.SetTitle(settings.PharmacyName, true)
	pdf.AddPage()

	e.writeHeader(pdf, family, settings)
	e.writeTable(pdf, family, items)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return &domain.ReportError{Op: "write " + path, Err: err}
	}
	return nil
}

// newDocument creates the PDF and registers an Arabic-capable font when
// one can be found. Without one the core Helvetica font is used; non-Latin
// header text is then rendered as-is with no shaping guarantee.
func (e *Exporter) newDocument() (*fpdf.Fpdf, string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	fontPath := findFont()
	if fontPath == "" {
		e.log.Warnw("no unicode font found, falling back to core font")
		return pdf, "Helvetica"
	}

	pdf.AddUTF8Font(appFontFamily, "", fontPath)
	pdf.AddUTF8Font(appFontFamily, "B", fontPath)
	if pdf.Err() {
		e.log.Warnw("unable to register font, falling back to core font",
			"font", fontPath, "error", pdf.Error())
		return fpdf.New("P", "mm", "A4", ""), "Helvetica"
	}
	return pdf, appFontFamily
}

func (e *Exporter) writeHeader(pdf *fpdf.Fpdf, family string, settings domain.Settings) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(0, 10, shape(settings.PharmacyName), "", 1, "C", false, 0, "")

	pdf.SetFont(family, "", 11)
	if phone := strings.TrimSpace(settings.PhoneNumber); phone != "" {
		pdf.CellFormat(0, 6, "Phone: "+shape(phone), "", 1, "C", false, 0, "")
	}
	if line := doctorLine(settings); line != "" {
		pdf.CellFormat(0, 6, line, "", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(left, y, pageWidth-right, y)
	pdf.Ln(6)
}

func doctorLine(settings domain.Settings) string {
	name := strings.TrimSpace(settings.DoctorName)
	phone := strings.TrimSpace(settings.DoctorPhone)
	switch {
	case name != "" && phone != "":
		return "Doctor: " + shape(name) + " — " + shape(phone)
	case name != "":
		return "Doctor: " + shape(name)
	case phone != "":
		return "Doctor phone: " + shape(phone)
	}
	return ""
}

var (
	tableHeaders = []string{"No", "Name", "Type", "Qty", "Price", "Expiry"}
	columnWidths = []float64{14, 64, 36, 18, 26, 28}
)

func (e *Exporter) writeTable(pdf *fpdf.Fpdf, family string, items []domain.ItemRow) {
	pdf.SetFont(family, "B", 12)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, h := range tableHeaders {
		pdf.CellFormat(columnWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 10)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
	for i, it := range items {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			shape(it.Name),
			shape(it.TypeName),
			fmt.Sprintf("%d", it.Quantity),
			fmt.Sprintf("%.2f", it.Price),
			it.Expiry(),
		}
		for c, v := range cells {
			pdf.CellFormat(columnWidths[c], 8, v, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}
