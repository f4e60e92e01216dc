package admin

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Dtgosha/est92-resort2/internal/pricing"
)

var exportColumns = []string{
	"ID", "Type", "Room/Service", "Guest", "Phone", "Email",
	"Check-in", "Check-out", "Guests", "Total", "Status", "Created",
}

// ExportExcel writes the filtered booking list as an .xlsx workbook.
func (d *Dashboard) ExportExcel(ctx context.Context, filter string, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Bookings"
	file.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
		_ = file.SetCellStyle(sheet, "A1", endCell, style)
	}

	for i, b := range d.List(ctx, filter) {
		row := []interface{}{
			b.ID, string(b.Kind), b.Room, b.FullName, b.Phone, b.Email,
			orDash(b.Checkin), orDash(b.Checkout), b.Guests,
			pricing.FormatUSD(pricing.Cents(b.TotalCents)),
			string(b.Status), b.CreatedAt.Format("2006-01-02 15:04"),
		}
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
