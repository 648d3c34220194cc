// Package report renders the processed statement as a multi-sheet
// xlsx workbook.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/faturatools/fatura-processor/internal/pipeline"
)

// Fixed sheet names, in workbook order. Per-card tabs follow these.
const (
	sheetIndex        = "Índice"
	sheetByCard       = "Consolidado Cartão"
	sheetByMerchant   = "Consolidado Estabelecimento"
	sheetCardCategory = "Consolidado Cat por Cartão"
	sheetRefunds      = "Devoluções"
	sheetSummary      = "Resumo Fatura"
	sheetInstallments = "Parcelas Ativas"
	sheetRaw          = "Transações Originais"
)

const currencyFmt = `"R$" #,##0.00`

// builder carries the open workbook and its shared styles.
type builder struct {
	f        *excelize.File
	header   int // style IDs
	currency int
	note     int
}

// Render writes the full report workbook and returns the xlsx bytes.
func Render(res *pipeline.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetAppProps(&excelize.AppProperties{
		Application: "Fatura Processor",
	})

	b := &builder{f: f}
	if err := b.makeStyles(); err != nil {
		return nil, err
	}

	f.SetSheetName("Sheet1", sheetIndex)
	for _, name := range []string{
		sheetByCard, sheetByMerchant, sheetCardCategory,
		sheetRefunds, sheetSummary, sheetInstallments, sheetRaw,
	} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("creating sheet %q: %w", name, err)
		}
	}

	b.writeByCard(res)
	if err := b.writeByMerchant(res); err != nil {
		return nil, err
	}
	b.writeCardCategory(res)
	b.writeRefunds(res)
	b.writeSummary(res)
	b.writeInstallments(res)
	b.writeRaw(res)

	cardSheets, err := b.writeCardTabs(res)
	if err != nil {
		return nil, err
	}

	b.writeIndex(res, cardSheets)

	f.SetSheetVisible(sheetRaw, false)
	idx, _ := f.GetSheetIndex(sheetIndex)
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *builder) makeStyles() error {
	var err error
	b.header, err = b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	fmtStr := currencyFmt
	b.currency, err = b.f.NewStyle(&excelize.Style{CustomNumFmt: &fmtStr})
	if err != nil {
		return err
	}
	b.note, err = b.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "#808080"},
	})
	return err
}

// setHeaders writes a styled header row at the given row number.
func (b *builder) setHeaders(sheet string, row int, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		b.f.SetCellValue(sheet, cell, h)
		b.f.SetCellStyle(sheet, cell, cell, b.header)
	}
}

// currencyColumn applies the BRL number format to a column range.
func (b *builder) currencyColumn(sheet string, col, firstRow, lastRow int) {
	if lastRow < firstRow {
		return
	}
	start, _ := excelize.CoordinatesToCellName(col, firstRow)
	end, _ := excelize.CoordinatesToCellName(col, lastRow)
	b.f.SetCellStyle(sheet, start, end, b.currency)
}

func (b *builder) writeByCard(res *pipeline.Result) {
	sheet := sheetByCard
	b.setHeaders(sheet, 1, []string{"Cartão", "Titular", "Total Gasto"})

	row := 2
	for _, card := range res.Cards() {
		b.f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Cartão "+card)
		b.f.SetCellValue(sheet, fmt.Sprintf("B%d", row), res.HolderFor(card))
		b.f.SetCellValue(sheet, fmt.Sprintf("C%d", row), res.ByCardTotal[card])
		row++
	}
	b.currencyColumn(sheet, 3, 2, row-1)

	b.f.SetColWidth(sheet, "A", "A", 16)
	b.f.SetColWidth(sheet, "B", "B", 28)
	b.f.SetColWidth(sheet, "C", "C", 15)
}

func (b *builder) writeByMerchant(res *pipeline.Result) error {
	sheet := sheetByMerchant

	b.f.SetCellValue(sheet, "A1",
		"Somente compras; estornos e pagamentos estão na aba Devoluções.")
	b.f.SetCellStyle(sheet, "A1", "A1", b.note)
	b.setHeaders(sheet, 2, []string{"Estabelecimento", "Total"})

	type entry struct {
		name  string
		total float64
	}
	entries := make([]entry, 0, len(res.ByMerchant))
	for name, total := range res.ByMerchant {
		entries = append(entries, entry{name, total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].total != entries[j].total {
			return entries[i].total > entries[j].total
		}
		return entries[i].name < entries[j].name
	})

	row := 3
	for _, e := range entries {
		b.f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.name)
		b.f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.total)
		row++
	}
	b.currencyColumn(sheet, 2, 3, row-1)

	b.f.SetColWidth(sheet, "A", "A", 45)
	b.f.SetColWidth(sheet, "B", "B", 15)

	// Keep the note and header rows visible while scrolling.
	if err := b.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if len(entries) > 0 {
		b.f.AutoFilter(sheet, fmt.Sprintf("A2:B%d", row-1), nil)
	}
	return nil
}

func (b *builder) writeCardCategory(res *pipeline.Result) {
	sheet := sheetCardCategory
	b.setHeaders(sheet, 1, []string{"Cartão", "Categoria", "Total"})

	row := 2
	for _, card := range res.Cards() {
		byCat := res.ByCardCategory[card]
		cats := make([]string, 0, len(byCat))
		for c := range byCat {
			cats = append(cats, c)
		}
		sort.Slice(cats, func(i, j int) bool {
			if byCat[cats[i]] != byCat[cats[j]] {
				return byCat[cats[i]] > byCat[cats[j]]
			}
			return cats[i] < cats[j]
		})
		for _, cat := range cats {
			b.f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Cartão "+card)
			b.f.SetCellValue(sheet, fmt.Sprintf("B%d", row), cat)
			b.f.SetCellValue(sheet, fmt.Sprintf("C%d", row), byCat[cat])
			row++
		}
	}
	b.currencyColumn(sheet, 3, 2, row-1)

	b.f.SetColWidth(sheet, "A", "A", 16)
	b.f.SetColWidth(sheet, "B", "B", 24)
	b.f.SetColWidth(sheet, "C", "C", 15)
}

func (b *builder) writeRefunds(res *pipeline.Result) {
	sheet := sheetRefunds
	b.setHeaders(sheet, 1, []string{"Data", "Cartão", "Descrição", "Valor"})

	row := 2
	for _, t := range res.Refunds {
		b.f.SetCellValue(sheet, fmt.Sprintf("A%d", row), formatDate(t.Date))
		b.f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.CardLast4)
		b.f.SetCellValue(sheet, fmt.Sprintf("C%d", row), t.Description)
		b.f.SetCellValue(sheet, fmt.Sprintf("D%d", row), *t.Amount)
		row++
	}
	b.currencyColumn(sheet, 4, 2, row-1)

	b.f.SetColWidth(sheet, "A", "A", 12)
	b.f.SetColWidth(sheet, "C", "C", 45)
	b.f.SetColWidth(sheet, "D", "D", 15)
}

// writeSummary lays the three totals out vertically, label beside value.
func (b *builder) writeSummary(res *pipeline.Result) {
	sheet := sheetSummary

	rows := []struct {
		label string
		value float64
	}{
		{"Total Fatura", res.Summary.NetTotal},
		{"Total Sem Devoluções", res.Summary.TotalCharges},
		{"Total Devoluções", res.Summary.TotalRefunds},
	}
	for i, r := range rows {
		b.f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), r.label)
		b.f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), r.value)
	}
	b.f.SetCellStyle(sheet, "A1", "A3", b.header)
	b.f.SetCellStyle(sheet, "B1", "B3", b.currency)

	b.f.SetColWidth(sheet, "A", "A", 22)
	b.f.SetColWidth(sheet, "B", "B", 18)
}

func (b *builder) writeInstallments(res *pipeline.Result) {
	sheet := sheetInstallments
	b.setHeaders(sheet, 1, []string{
		"Descrição", "Cartão", "Parcela", "Restantes",
		"Valor Parcela", "Compromisso Futuro", "Término Estimado",
	})

	row := 2
	for _, t := range res.ActiveInstallments {
		remaining, _ := t.RemainingInstallments()
		b.f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.Description)
		b.f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.CardLast4)
		b.f.SetCellValue(sheet, fmt.Sprintf("C%d", row), t.InstallmentLabel)
		b.f.SetCellValue(sheet, fmt.Sprintf("D%d", row), remaining)
		if t.Amount != nil {
			b.f.SetCellValue(sheet, fmt.Sprintf("E%d", row), *t.Amount)
		}
		b.f.SetCellValue(sheet, fmt.Sprintf("F%d", row), t.FutureCommitment())
		b.f.SetCellValue(sheet, fmt.Sprintf("G%d", row), formatDate(t.EstimatedCompletion()))
		row++
	}
	b.currencyColumn(sheet, 5, 2, row-1)
	b.currencyColumn(sheet, 6, 2, row-1)

	b.f.SetColWidth(sheet, "A", "A", 40)
	b.f.SetColWidth(sheet, "E", "G", 18)
}

func (b *builder) writeRaw(res *pipeline.Result) {
	sheet := sheetRaw
	b.setHeaders(sheet, 1, []string{
		"Data", "Nome no Cartão", "Final do Cartão", "Categoria",
		"Descrição", "Parcela", "Valor BRL",
	})

	row := 2
	for _, t := range res.Statement.Transactions {
		b.f.SetCellValue(sheet, fmt.Sprintf("A%d", row), formatDate(t.Date))
		b.f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.CardholderName)
		b.f.SetCellValue(sheet, fmt.Sprintf("C%d", row), t.CardLast4)
		b.f.SetCellValue(sheet, fmt.Sprintf("D%d", row), t.Category)
		b.f.SetCellValue(sheet, fmt.Sprintf("E%d", row), t.Description)
		b.f.SetCellValue(sheet, fmt.Sprintf("F%d", row), t.InstallmentLabel)
		if t.Amount != nil {
			b.f.SetCellValue(sheet, fmt.Sprintf("G%d", row), *t.Amount)
		}
		row++
	}
	b.currencyColumn(sheet, 7, 2, row-1)
	b.f.SetColWidth(sheet, "E", "E", 45)
}

// writeCardTabs creates a per-card tab with the category breakdown and a
// pie chart. Tabs for cards with two or fewer categories stay hidden.
func (b *builder) writeCardTabs(res *pipeline.Result) ([]string, error) {
	var names []string
	for _, card := range res.Cards() {
		sheet := "Cartão " + card
		if _, err := b.f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
		names = append(names, sheet)

		byCat := res.ByCardCategory[card]
		b.setHeaders(sheet, 1, []string{"Categoria", "Total"})

		row := 2
		for _, s := range topSlices(byCat) {
			b.f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.label)
			b.f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.value)
			row++
		}
		b.currencyColumn(sheet, 2, 2, row-1)
		b.f.SetColWidth(sheet, "A", "A", 24)
		b.f.SetColWidth(sheet, "B", "B", 15)

		if png, err := categoryPie(byCat); err == nil {
			if err := b.f.AddPictureFromBytes(sheet, "D2", &excelize.Picture{
				Extension: ".png",
				File:      png,
			}); err != nil {
				return nil, fmt.Errorf("embedding chart on %q: %w", sheet, err)
			}
		}

		if len(byCat) <= 2 {
			b.f.SetSheetVisible(sheet, false)
		}
	}
	return names, nil
}

// writeIndex fills the index tab with hyperlinks to every other tab.
// Card-tab entries carry the holder name; the raw-transactions tab
// stays out of the index, it is hidden.
func (b *builder) writeIndex(res *pipeline.Result, cardSheets []string) {
	sheet := sheetIndex
	b.setHeaders(sheet, 1, []string{"Aba"})

	type entry struct {
		target  string
		display string
	}
	entries := []entry{
		{sheetByCard, sheetByCard},
		{sheetByMerchant, sheetByMerchant},
		{sheetCardCategory, sheetCardCategory},
		{sheetRefunds, sheetRefunds},
		{sheetSummary, sheetSummary},
		{sheetInstallments, sheetInstallments},
	}
	for _, name := range cardSheets {
		display := name
		card := strings.TrimPrefix(name, "Cartão ")
		if holder := res.HolderFor(card); holder != "" {
			display = name + " – " + holder
		}
		entries = append(entries, entry{name, display})
	}

	row := 2
	for _, e := range entries {
		cell := fmt.Sprintf("A%d", row)
		b.f.SetCellValue(sheet, cell, e.display)
		b.f.SetCellHyperLink(sheet, cell, fmt.Sprintf("'%s'!A1", e.target), "Location")
		row++
	}
	b.f.SetColWidth(sheet, "A", "A", 40)
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("02/01/2006")
}
