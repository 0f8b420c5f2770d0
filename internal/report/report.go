package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

const (
	SheetAppointments = "Agendamentos"
	SheetSummary      = "Resumo"
)

var appointmentHeaders = []string{"Data", "Início", "Fim", "Agenda", "Cliente", "Telefone", "Serviço", "Status"}

var statusLabels = map[domain.Status]string{
	domain.StatusScheduled: "Agendado",
	domain.StatusCanceled:  "Cancelado",
}

// Monthly monta a planilha do mês a partir dos dias já agrupados.
// O chamador é responsável por fechar o arquivo.
func Monthly(book *domain.MonthBook, title string) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetAppointments)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	header, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	writeAppointments(f, book, header)
	writeSummary(f, book, header, title)

	return f, nil
}

// Write grava o relatório do mês em w no formato xlsx.
func Write(w io.Writer, book *domain.MonthBook, title string) error {
	f, err := Monthly(book, title)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeAppointments(f *excelize.File, book *domain.MonthBook, header int) {
	sheet := SheetAppointments

	for i, h := range appointmentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, header)
	}

	loc := book.Location()
	row := 2
	for _, key := range book.Keys() {
		for _, ap := range book.Day(key) {
			values := []any{
				key,
				ap.StartTime.In(loc).Format(domain.ClockLayout),
				ap.EndTime.In(loc).Format(domain.ClockLayout),
				ap.Calendar.Name,
				ap.Client.Name,
				ap.Client.Phone,
				ap.Service.Name,
				statusLabel(ap.Status),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "C", 8)
	_ = f.SetColWidth(sheet, "D", "G", 22)
	_ = f.SetColWidth(sheet, "H", "H", 12)
}

func writeSummary(f *excelize.File, book *domain.MonthBook, header int, title string) {
	sheet := SheetSummary

	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.MergeCell(sheet, "A1", "C1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	for i, h := range []string{"Data", "Total", "Ativos"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, header)
	}

	active := book.ActiveCounts()
	row := 3
	total, totalActive := 0, 0
	for _, key := range book.Keys() {
		n := len(book.Day(key))
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), key)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), n)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), active[key])
		total += n
		totalActive += active[key]
		row++
	}

	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), total)
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), totalActive)
	_ = f.SetColWidth(sheet, "A", "C", 14)
}

func statusLabel(s string) string {
	if l, ok := statusLabels[domain.Status(s)]; ok {
		return l
	}
	return s
}
