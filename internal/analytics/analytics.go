// Package analytics derives learning statistics from a learner's attempts.
// Every function expects attempts sorted oldest first.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/edututor/edututor/internal/quizgen"
	"github.com/edututor/edututor/internal/scoring"
	"github.com/edututor/edututor/internal/store"
)

// Overview is the dashboard summary.
type Overview struct {
	Total           int     `json:"total_quizzes"`
	Average         float64 `json:"average_score"`
	Best            float64 `json:"best_score"`
	FavoriteSubject string  `json:"favorite_subject"`
	Trend           string  `json:"improvement_trend"`
}

// SubjectStats aggregates attempts for one subject.
type SubjectStats struct {
	Subject     string    `json:"subject"`
	Average     float64   `json:"average_score"`
	Count       int       `json:"quizzes_taken"`
	StdDev      float64   `json:"score_std_dev"`
	LastAttempt time.Time `json:"last_attempt"`
	Label       string    `json:"performance"`
}

// DifficultyStats aggregates attempts for one difficulty.
type DifficultyStats struct {
	Difficulty string  `json:"difficulty"`
	Average    float64 `json:"average_score"`
	Attempts   int     `json:"attempts"`
}

// WeekdayActivity counts attempts on one day of the week.
type WeekdayActivity struct {
	Day   time.Weekday `json:"-"`
	Name  string       `json:"day"`
	Count int          `json:"count"`
}

func scores(attempts []store.Attempt) []float64 {
	out := make([]float64, len(attempts))
	for i, a := range attempts {
		out[i] = a.Score
	}
	return out
}

// Summarize computes the dashboard overview.
func Summarize(attempts []store.Attempt) Overview {
	if len(attempts) == 0 {
		return Overview{FavoriteSubject: "None", Trend: "No data"}
	}

	s := scores(attempts)
	best := s[0]
	for _, v := range s[1:] {
		best = math.Max(best, v)
	}

	return Overview{
		Total:           len(attempts),
		Average:         scoring.Round1(scoring.Mean(s)),
		Best:            scoring.Round1(best),
		FavoriteSubject: favoriteSubject(attempts),
		Trend:           overviewTrend(s),
	}
}

// favoriteSubject is the most frequent subject. Ties go to the
// alphabetically first subject.
func favoriteSubject(attempts []store.Attempt) string {
	counts := make(map[string]int)
	for _, a := range attempts {
		counts[a.Subject]++
	}
	fav, top := "None", 0
	for subj, n := range counts {
		if n > top || (n == top && subj < fav) {
			fav, top = subj, n
		}
	}
	return fav
}

func overviewTrend(s []float64) string {
	if len(s) < 6 {
		return "Not enough data"
	}
	early := scoring.Mean(s[:3])
	recent := scoring.Mean(s[len(s)-3:])
	switch {
	case recent > early+5:
		return "Improving"
	case recent < early-5:
		return "Declining"
	default:
		return "Stable"
	}
}

// ProgressTrend compares the first and last quarter of attempts.
func ProgressTrend(attempts []store.Attempt) string {
	n := len(attempts)
	if n < 4 {
		return "Not enough data"
	}
	quarter := max(2, n/4)
	s := scores(attempts)
	diff := scoring.Mean(s[n-quarter:]) - scoring.Mean(s[:quarter])
	switch {
	case diff > 10:
		return "Strong Improvement"
	case diff > 5:
		return "Improving"
	case diff > -5:
		return "Stable"
	default:
		return "Declining"
	}
}

// Consistency maps the sample standard deviation of scores onto 0-10,
// where 10 is perfectly consistent.
func Consistency(attempts []store.Attempt) float64 {
	if len(attempts) < 2 {
		return 10
	}
	return math.Max(0, 10-sampleStdDev(scores(attempts))/10)
}

func sampleStdDev(s []float64) float64 {
	if len(s) < 2 {
		return 0
	}
	mean := scoring.Mean(s)
	var sq float64
	for _, v := range s {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(s)-1))
}

func subjectLabel(avg float64) string {
	switch {
	case avg >= 90:
		return "Excellent"
	case avg >= 80:
		return "Good"
	default:
		return "Needs Work"
	}
}

// SubjectBreakdown groups attempts by subject, sorted by subject name.
func SubjectBreakdown(attempts []store.Attempt) []SubjectStats {
	groups := make(map[string][]store.Attempt)
	for _, a := range attempts {
		groups[a.Subject] = append(groups[a.Subject], a)
	}

	out := make([]SubjectStats, 0, len(groups))
	for subj, as := range groups {
		s := scores(as)
		avg := scoring.Mean(s)
		last := as[0].Timestamp
		for _, a := range as[1:] {
			if a.Timestamp.After(last) {
				last = a.Timestamp
			}
		}
		out = append(out, SubjectStats{
			Subject:     subj,
			Average:     round2(avg),
			Count:       len(as),
			StdDev:      round2(sampleStdDev(s)),
			LastAttempt: last,
			Label:       subjectLabel(avg),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}

// DifficultyBreakdown groups attempts by difficulty, easiest first.
func DifficultyBreakdown(attempts []store.Attempt) []DifficultyStats {
	groups := make(map[string][]float64)
	for _, a := range attempts {
		groups[a.Difficulty] = append(groups[a.Difficulty], a.Score)
	}

	rank := func(d string) int {
		for i, known := range quizgen.Difficulties {
			if string(known) == d {
				return i
			}
		}
		return len(quizgen.Difficulties)
	}

	out := make([]DifficultyStats, 0, len(groups))
	for d, s := range groups {
		out = append(out, DifficultyStats{Difficulty: d, Average: round2(scoring.Mean(s)), Attempts: len(s)})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank(out[i].Difficulty), rank(out[j].Difficulty)
		if ri != rj {
			return ri < rj
		}
		return out[i].Difficulty < out[j].Difficulty
	})
	return out
}

// ActivityByWeekday counts attempts per weekday, Monday first.
func ActivityByWeekday(attempts []store.Attempt) []WeekdayActivity {
	out := make([]WeekdayActivity, 7)
	for i := range out {
		d := time.Weekday((i + 1) % 7)
		out[i] = WeekdayActivity{Day: d, Name: d.String()}
	}
	for _, a := range attempts {
		idx := (int(a.Timestamp.Weekday()) + 6) % 7
		out[idx].Count++
	}
	return out
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// LearningStreak counts consecutive days with at least one attempt, ending
// today, or yesterday when nothing has been taken yet today.
func LearningStreak(attempts []store.Attempt, now time.Time) int {
	loc := now.Location()
	active := make(map[time.Time]bool)
	for _, a := range attempts {
		active[dateOf(a.Timestamp, loc)] = true
	}

	cursor := dateOf(now, loc)
	if !active[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	streak := 0
	for active[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// CountSince counts attempts taken within window before now.
func CountSince(attempts []store.Attempt, now time.Time, window time.Duration) int {
	cutoff := now.Add(-window)
	n := 0
	for _, a := range attempts {
		if !a.Timestamp.Before(cutoff) {
			n++
		}
	}
	return n
}

// MonthlyAverage extrapolates the quiz rate over the active span to 30 days.
func MonthlyAverage(attempts []store.Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	first, last := attempts[0].Timestamp, attempts[0].Timestamp
	for _, a := range attempts[1:] {
		if a.Timestamp.Before(first) {
			first = a.Timestamp
		}
		if a.Timestamp.After(last) {
			last = a.Timestamp
		}
	}
	days := int(last.Sub(first).Hours()/24) + 1
	return float64(len(attempts)) * 30 / float64(days)
}

// AverageGapDays is the mean number of whole days between consecutive
// attempts, or 0 with fewer than two.
func AverageGapDays(attempts []store.Attempt) float64 {
	if len(attempts) < 2 {
		return 0
	}
	var total int
	for i := 1; i < len(attempts); i++ {
		total += int(attempts[i].Timestamp.Sub(attempts[i-1].Timestamp).Hours() / 24)
	}
	return float64(total) / float64(len(attempts)-1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
