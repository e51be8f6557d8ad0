package infra

// pdf.go — receipt generation using go-pdf/fpdf.
// Renders an A7-size receipt for an applied service:
//   - Business name header
//   - Date and vehicle identification
//   - Size tier and applied price
//   - Discount line (if applicable)
//   - Bold total and achieved margin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jcgmtxt/aquashield/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateComprobantePDF renders the PDF receipt for an applied service.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateComprobantePDF(applied *model.AppliedService, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comprobante_%s.pdf", applied.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper (custom size, "A7" is not in fpdf's named list)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "AquaShield", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de Servicio", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Service info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Protección Anticorrosiva", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, applied.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Vehicle ───────────────────────────────────────────────────────────────
	col1 := contentW * 0.38
	col2 := contentW * 0.62

	vehiculo := fmt.Sprintf("%s %s", applied.VehicleBrand, applied.VehicleModel)
	if applied.Car != nil {
		vehiculo = applied.Car.FullName()
	}
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Vehículo:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col2, 5, vehiculo, "", 1, "L", false, 0, "")

	if applied.Car != nil {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.CellFormat(col1, 5, "Placa:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(col2, 5, applied.Car.PlateNumber, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Tamaño:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col2, 5, applied.VehicleSize.Label(), "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Pricing ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if applied.HasDiscount() {
		pdf.CellFormat(col1+col2*0.3, 5, "Precio lista:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col2*0.7, 5, fmt.Sprintf("$%d", applied.OriginalPrice()), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2*0.3, 5, "Descuento:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col2*0.7, 5, fmt.Sprintf("-$%d", applied.DiscountAmount), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2*0.3, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2*0.7, 6, fmt.Sprintf("$%d", applied.FinalPrice), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por confiar en nosotros!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
