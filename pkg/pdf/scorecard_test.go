package pdf

import (
	"bytes"
	"testing"
)

func sampleScorecard(holes int) Scorecard {
	pars := make([]int, holes)
	scores := make([]int, holes)
	total := 0
	for i := range pars {
		pars[i] = 4
		scores[i] = 5
		total += 4
	}
	return Scorecard{
		CourseName: "Pondok Indah Golf Course",
		Location:   "Jakarta Selatan",
		Date:       "21-08-2026",
		HoleCount:  holes,
		TotalPar:   total,
		HolePars:   pars,
		Rows: []Row{
			{Rank: 1, Name: "Budi Hartono Wijaya", Tee: "white", CourseHandicap: 12, Gross: holes * 5, Net: holes*5 - 12, VsPar: holes, Scores: scores},
			{Rank: 2, Name: "Sari", Tee: "red", CourseHandicap: 0, Gross: holes * 5, Net: holes * 5, VsPar: holes, Scores: scores},
		},
		Recommendations: []string{
			"Budi Hartono Wijaya: Solid round. Focus on reducing bogeys.",
			"Sari: Work on approach shots and putting.",
		},
	}
}

func TestRenderFullRound(t *testing.T) {
	out, err := Render(sampleScorecard(18))
	if err != nil {
		t.Fatalf("Render(18 holes): %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF, starts with %q", out[:8])
	}
	if len(out) < 1000 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(out))
	}
}

func TestRenderNineHoles(t *testing.T) {
	out, err := Render(sampleScorecard(9))
	if err != nil {
		t.Fatalf("Render(9 holes): %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestRenderHandlesMissingHoleScores(t *testing.T) {
	sc := sampleScorecard(18)
	sc.Rows[0].Scores = sc.Rows[0].Scores[:4]
	sc.HolePars = sc.HolePars[:4]
	if _, err := Render(sc); err != nil {
		t.Fatalf("Render with short score list: %v", err)
	}
}
