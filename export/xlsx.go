package export

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/on-the-ground/timeboard/lecture"
)

// ErrNoTables reports an export with no schedule tables at all.
var ErrNoTables = errors.New("no tables to export")

const baseGridPeriods = 9

// XLSX renders schedule tables into one workbook, one worksheet per
// partition: day columns against period rows, each cell listing the
// lectures occupying that slot. Sheets are ordered by partition key.
func XLSX(tables map[string][]*lecture.Entry, title string) (*bytes.Buffer, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	firstIdx := -1
	for _, name := range names {
		sheet := sheetName(name)
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
		if firstIdx < 0 {
			firstIdx = idx
		}
		renderSheet(f, sheet, name, tables[name], title, headerStyle)
	}
	f.SetActiveSheet(firstIdx)
	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func renderSheet(f *excelize.File, sheet, partition string, entries []*lecture.Entry, title string, headerStyle int) {
	days, maxPeriod := gridShape(entries)

	// grid[day][period] -> lectures occupying that slot
	grid := make(map[string]map[int][]string, len(days))
	for _, e := range entries {
		text := e.Lecture.Title
		if e.Room != "" {
			text = fmt.Sprintf("%s (%s)", text, e.Room)
		}
		byPeriod := grid[e.Day]
		if byPeriod == nil {
			byPeriod = make(map[int][]string)
			grid[e.Day] = byPeriod
		}
		for _, p := range e.Periods {
			byPeriod[p] = append(byPeriod[p], text)
		}
	}

	lastCol := colName(1 + len(days))
	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", lastCol, 22)

	f.SetCellValue(sheet, cell("A", 1), fmt.Sprintf("%s / %s", title, partition))
	f.MergeCell(sheet, cell("A", 1), cell(lastCol, 1))
	f.SetCellStyle(sheet, cell("A", 1), cell("A", 1), headerStyle)

	f.SetCellValue(sheet, cell("A", 2), "교시")
	f.SetCellStyle(sheet, cell("A", 2), cell(lastCol, 2), headerStyle)
	for i, day := range days {
		f.SetCellValue(sheet, cell(colName(2+i), 2), day)
	}

	for p := 1; p <= maxPeriod; p++ {
		row := 2 + p
		f.SetCellValue(sheet, cell("A", row), p)
		for i, day := range days {
			col := colName(2 + i)
			if texts := grid[day][p]; len(texts) > 0 {
				f.SetCellValue(sheet, cell(col, row), strings.Join(texts, "; "))
			} else {
				f.SetCellValue(sheet, cell(col, row), "-")
			}
		}
	}
}

var dayOrder = []string{"월", "화", "수", "목", "금", "토", "일"}

// gridShape returns the day columns and period row count to draw:
// weekdays always, weekend and unrecognized day labels only when
// occupied, at least periods 1 through 9.
func gridShape(entries []*lecture.Entry) ([]string, int) {
	used := make(map[string]bool, len(entries))
	maxPeriod := baseGridPeriods
	for _, e := range entries {
		used[e.Day] = true
		for _, p := range e.Periods {
			if p > maxPeriod {
				maxPeriod = p
			}
		}
	}

	days := make([]string, 0, len(dayOrder))
	for i, day := range dayOrder {
		if i < 5 || used[day] {
			days = append(days, day)
		}
		delete(used, day)
	}
	extras := make([]string, 0, len(used))
	for day := range used {
		extras = append(extras, day)
	}
	sort.Strings(extras)
	return append(days, extras...), maxPeriod
}

// sheetName clamps a partition key to what a worksheet may be called.
func sheetName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		default:
			return r
		}
	}, name)
	runes := []rune(sanitized)
	if len(runes) > 31 {
		return string(runes[:31])
	}
	return sanitized
}

func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
