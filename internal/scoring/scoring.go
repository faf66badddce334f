// Package scoring computes golf round results: course handicaps, gross
// and net scores, per-hole classification, ranking, and the narrative
// recommendation lines shown on the scorecard.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wpras/golfku/internal/course"
)

// ErrNoValidPlayers is returned when no player in the request carries a
// name and a full set of hole scores.
var ErrNoValidPlayers = errors.New("no valid players to score")

// PlayerRound is one player's raw input for a round.
type PlayerRound struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Tee           string  `json:"tee"`
	HandicapIndex float64 `json:"handicap"`
	Scores        []int   `json:"scores"`
}

// HoleDetail is the classified result of a single hole.
type HoleDetail struct {
	Hole      int    `json:"hole"`
	Par       int    `json:"par"`
	Score     int    `json:"score"`
	ScoreName string `json:"score_name"`
	Diff      int    `json:"diff"`
}

// PlayerResult is one player's computed scorecard line.
type PlayerResult struct {
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Tee            string       `json:"tee"`
	HandicapIndex  float64      `json:"handicap_index"`
	CourseHandicap int          `json:"course_handicap"`
	GrossScore     int          `json:"gross_score"`
	NetScore       int          `json:"net_score"`
	VsPar          int          `json:"vs_par"`
	Holes          []HoleDetail `json:"holes"`
	Scores         []int        `json:"scores"`
	Rank           int          `json:"rank"`
}

// Round is the computed outcome of scoring one game.
type Round struct {
	HoleCount       int
	TotalPar        int
	HolePars        []int
	Results         []*PlayerResult
	Recommendations []string
	Skipped         []string
}

// ScoreName returns the golfing name for a hole score. A single stroke
// is always a hole in one regardless of par.
func ScoreName(strokes, par int) string {
	if strokes == 1 {
		return "Hole in One"
	}
	switch strokes - par {
	case -3:
		return "Albatross"
	case -2:
		return "Eagle"
	case -1:
		return "Birdie"
	case 0:
		return "Par"
	case 1:
		return "Bogey"
	case 2:
		return "Double Bogey"
	case 3:
		return "Triple Bogey"
	}
	if strokes >= par*2 {
		return "Double Par+"
	}
	return fmt.Sprintf("+%d", strokes-par)
}

// CourseHandicap applies the USGA course handicap formula:
// round(index * slope/113 + (rating - par)). A zero index plays off
// scratch.
func CourseHandicap(handicapIndex float64, slope int, rating float64, par int) int {
	if handicapIndex == 0 {
		return 0
	}
	ch := handicapIndex*(float64(slope)/113.0) + (rating - float64(par))
	return int(math.Round(ch))
}

// ScoreRound scores every valid player against the course, ranks them by
// net score, and builds their recommendation lines. A player is skipped
// when the name is missing or the score list does not cover every hole;
// skipped names are reported on the Round. ErrNoValidPlayers is returned
// when nobody could be scored.
func ScoreRound(co *course.Course, holeCount int, players []PlayerRound) (*Round, error) {
	pars := co.ParsFor(holeCount)
	totalPar := 0
	for _, p := range pars {
		totalPar += p
	}

	rnd := &Round{
		HoleCount: holeCount,
		TotalPar:  totalPar,
		HolePars:  pars,
	}

	for _, p := range players {
		if p.Name == "" || len(p.Scores) != len(pars) {
			rnd.Skipped = append(rnd.Skipped, p.Name)
			continue
		}

		tee := p.Tee
		if tee == "" {
			tee = "white"
		}
		teeData, ok := co.TeeFor(tee)
		if !ok {
			rnd.Skipped = append(rnd.Skipped, p.Name)
			continue
		}

		courseHandicap := CourseHandicap(p.HandicapIndex, teeData.Slope, teeData.Rating, totalPar)

		gross := 0
		for _, s := range p.Scores {
			gross += s
		}

		holes := make([]HoleDetail, len(p.Scores))
		for i, s := range p.Scores {
			holes[i] = HoleDetail{
				Hole:      i + 1,
				Par:       pars[i],
				Score:     s,
				ScoreName: ScoreName(s, pars[i]),
				Diff:      s - pars[i],
			}
		}

		rnd.Results = append(rnd.Results, &PlayerResult{
			Name:           p.Name,
			Email:          p.Email,
			Tee:            tee,
			HandicapIndex:  p.HandicapIndex,
			CourseHandicap: courseHandicap,
			GrossScore:     gross,
			NetScore:       gross - courseHandicap,
			VsPar:          gross - totalPar,
			Holes:          holes,
			Scores:         p.Scores,
		})
	}

	if len(rnd.Results) == 0 {
		return nil, ErrNoValidPlayers
	}

	// Recommendations keep the request order even though results are
	// re-ordered by rank below.
	rnd.Recommendations = Recommendations(rnd.Results, pars)

	sort.SliceStable(rnd.Results, func(i, j int) bool {
		return rnd.Results[i].NetScore < rnd.Results[j].NetScore
	})
	for i, r := range rnd.Results {
		r.Rank = i + 1
	}

	return rnd, nil
}

// Recommendations builds one narrative line per player from their gross
// performance against par.
func Recommendations(results []*PlayerResult, pars []int) []string {
	recs := make([]string, 0, len(results))
	for _, r := range results {
		total := 0
		parTotal := 0
		doublePlus := 0
		birdies := 0
		for i, s := range r.Scores {
			if i >= len(pars) {
				break
			}
			total += s
			parTotal += pars[i]
			if s >= pars[i]+2 {
				doublePlus++
			}
			if s <= pars[i]-1 {
				birdies++
			}
		}
		diff := total - parTotal

		var b strings.Builder
		fmt.Fprintf(&b, "📊 %s: ", r.Name)
		switch {
		case diff <= -5:
			b.WriteString("Outstanding round! Keep up the excellent play.")
		case diff <= 0:
			b.WriteString("Great round at or under par!")
		case diff <= 5:
			b.WriteString("Solid round. Focus on reducing bogeys.")
		case diff <= 10:
			b.WriteString("Work on approach shots and putting.")
		default:
			b.WriteString("Consider taking lessons to improve fundamentals.")
		}

		if doublePlus > 3 {
			b.WriteString(" Avoid big numbers by playing safe on difficult holes.")
		}
		if birdies > 2 {
			fmt.Fprintf(&b, " Great birdie opportunities (%d birdies)!", birdies)
		}

		recs = append(recs, b.String())
	}
	return recs
}
