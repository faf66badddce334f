// Package pdf renders finished rounds as printable scorecards.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Row is one player's line on the scorecard table.
type Row struct {
	Rank           int
	Name           string
	Tee            string
	CourseHandicap int
	Gross          int
	Net            int
	VsPar          int
	Scores         []int
}

// Scorecard is the input for Render.
type Scorecard struct {
	CourseName      string
	Location        string
	Date            string
	HoleCount       int
	TotalPar        int
	HolePars        []int
	Rows            []Row
	Recommendations []string
}

const maxNameLen = 12

// Render draws the scorecard. Rounds longer than nine holes use a
// landscape page so every hole column fits.
func Render(sc Scorecard) ([]byte, error) {
	orientation := "P"
	if sc.HoleCount > 9 {
		orientation = "L"
	}

	doc := fpdf.New(orientation, "mm", "A4", "")
	doc.SetMargins(12.7, 12.7, 12.7)
	doc.SetAutoPageBreak(true, 12.7)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	// Title
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(26, 95, 42)
	doc.CellFormat(0, 12, fmt.Sprintf("Congratulations! You Finished %d Holes!", sc.HoleCount), "", 1, "C", false, 0, "")
	doc.Ln(2)

	// Course info
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 7, tr(sc.CourseName), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr(sc.Location), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, "Date: "+sc.Date, "", 1, "C", false, 0, "")
	doc.Ln(6)

	fixedWidths := []float64{12, 30, 10, 12, 14, 14, 14}
	fixedTotal := 0.0
	for _, w := range fixedWidths {
		fixedTotal += w
	}
	pageW, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	holeW := (pageW - left - right - fixedTotal) / float64(sc.HoleCount)

	rowH := 7.0

	// Header row
	doc.SetFillColor(26, 95, 42)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 8)
	for i, label := range []string{"Rank", "Player", "Tee", "HCP", "Gross", "Net", "vs Par"} {
		doc.CellFormat(fixedWidths[i], rowH, label, "1", 0, "C", true, 0, "")
	}
	for h := 1; h <= sc.HoleCount; h++ {
		doc.CellFormat(holeW, rowH, strconv.Itoa(h), "1", 0, "C", true, 0, "")
	}
	doc.Ln(rowH)

	// Par row
	doc.SetFillColor(144, 238, 144)
	doc.SetTextColor(0, 0, 0)
	parCells := []string{"", "PAR", "", "", strconv.Itoa(sc.TotalPar), "", ""}
	for i, cell := range parCells {
		doc.CellFormat(fixedWidths[i], rowH, cell, "1", 0, "C", true, 0, "")
	}
	for h := 0; h < sc.HoleCount; h++ {
		par := ""
		if h < len(sc.HolePars) {
			par = strconv.Itoa(sc.HolePars[h])
		}
		doc.CellFormat(holeW, rowH, par, "1", 0, "C", true, 0, "")
	}
	doc.Ln(rowH)

	// Player rows, shading every other one
	doc.SetFont("Helvetica", "", 8)
	for i, row := range sc.Rows {
		fill := i%2 == 0
		doc.SetFillColor(240, 240, 240)

		name := row.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen]
		}
		tee := ""
		if row.Tee != "" {
			tee = strings.ToUpper(row.Tee[:1])
		}
		vsPar := strconv.Itoa(row.VsPar)
		if row.VsPar > 0 {
			vsPar = "+" + vsPar
		}

		cells := []string{
			strconv.Itoa(row.Rank),
			tr(name),
			tee,
			strconv.Itoa(row.CourseHandicap),
			strconv.Itoa(row.Gross),
			strconv.Itoa(row.Net),
			vsPar,
		}
		for j, cell := range cells {
			doc.CellFormat(fixedWidths[j], rowH, cell, "1", 0, "C", fill, 0, "")
		}
		for h := 0; h < sc.HoleCount; h++ {
			score := ""
			if h < len(row.Scores) {
				score = strconv.Itoa(row.Scores[h])
			}
			doc.CellFormat(holeW, rowH, score, "1", 0, "C", fill, 0, "")
		}
		doc.Ln(rowH)
	}

	// Recommendations
	if len(sc.Recommendations) > 0 {
		doc.Ln(8)
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, "Recommendations:", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		for _, rec := range sc.Recommendations {
			doc.MultiCell(0, 5, tr("- "+rec), "", "L", false)
			doc.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
