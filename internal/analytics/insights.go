package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/edututor/edututor/internal/scoring"
	"github.com/edututor/edututor/internal/store"
)

// Report bundles every analytics figure for one learner.
type Report struct {
	Overview        Overview          `json:"overview"`
	ProgressTrend   string            `json:"progress_trend"`
	Consistency     float64           `json:"consistency"`
	Subjects        []SubjectStats    `json:"subjects"`
	Difficulties    []DifficultyStats `json:"difficulties"`
	Weekdays        []WeekdayActivity `json:"weekday_activity"`
	Streak          int               `json:"learning_streak"`
	ThisWeek        int               `json:"quizzes_this_week"`
	MonthlyAverage  float64           `json:"monthly_average"`
	AverageGapDays  float64           `json:"average_gap_days"`
	Insights        []string          `json:"insights"`
	Recommendations []string          `json:"recommendations"`
	Personalized    []string          `json:"personalized"`
}

// Week is the window used for the "this week" figure.
const Week = 7 * 24 * time.Hour

// Build computes the full report as of now.
func Build(attempts []store.Attempt, now time.Time) Report {
	return Report{
		Overview:        Summarize(attempts),
		ProgressTrend:   ProgressTrend(attempts),
		Consistency:     round2(Consistency(attempts)),
		Subjects:        SubjectBreakdown(attempts),
		Difficulties:    DifficultyBreakdown(attempts),
		Weekdays:        ActivityByWeekday(attempts),
		Streak:          LearningStreak(attempts, now),
		ThisWeek:        CountSince(attempts, now, Week),
		MonthlyAverage:  round2(MonthlyAverage(attempts)),
		AverageGapDays:  round2(AverageGapDays(attempts)),
		Insights:        Insights(attempts),
		Recommendations: StudyRecommendations(attempts, now),
		Personalized:    Personalized(attempts),
	}
}

// Insights describes performance and study-habit patterns. The habit
// insights need at least two attempts.
func Insights(attempts []store.Attempt) []string {
	var out []string
	s := scores(attempts)

	if len(s) >= 5 {
		recent := scoring.Mean(s[len(s)-3:])
		overall := scoring.Mean(s)
		switch {
		case recent > overall+5:
			out = append(out, "Your recent performance shows significant improvement! Keep up the excellent work.")
		case recent < overall-5:
			out = append(out, "Your recent scores have dipped. Consider reviewing fundamental concepts.")
		}
	}

	if subjects := SubjectBreakdown(attempts); len(subjects) > 0 {
		best, worst := subjects[0], subjects[0]
		for _, st := range subjects[1:] {
			if st.Average > best.Average {
				best = st
			}
			if st.Average < worst.Average {
				worst = st
			}
		}
		if best.Average-worst.Average > 20 {
			out = append(out, fmt.Sprintf("You excel in %s but struggle with %s. Focus more practice time on %s.",
				best.Subject, worst.Subject, worst.Subject))
		}
	}

	if len(attempts) >= 2 {
		gap := AverageGapDays(attempts)
		switch {
		case gap > 7:
			out = append(out, "Try to maintain more consistent study habits. Regular practice leads to better retention.")
		case gap < 1:
			out = append(out, "Great job maintaining a consistent learning schedule!")
		}
	}

	return out
}

// StudyRecommendations suggests next steps from average score, quiz
// frequency and subject variety.
func StudyRecommendations(attempts []store.Attempt, now time.Time) []string {
	if len(attempts) == 0 {
		return nil
	}

	var out []string
	avg := scoring.Mean(scores(attempts))
	switch {
	case avg < 70:
		out = append(out,
			"Focus on easier difficulty levels to build confidence before advancing",
			"Review explanations carefully after each quiz")
	case avg > 85:
		out = append(out,
			"Challenge yourself with harder difficulty levels",
			"Explore new subjects to broaden your knowledge")
	}

	loc := now.Location()
	first := attempts[0].Timestamp
	for _, a := range attempts[1:] {
		if a.Timestamp.Before(first) {
			first = a.Timestamp
		}
	}
	days := max(1, daysBetween(dateOf(first, loc), dateOf(now, loc)))
	if float64(len(attempts))/float64(days) < 0.3 {
		out = append(out, "Increase your quiz frequency for better learning retention")
	}

	if len(SubjectBreakdown(attempts)) < 3 {
		out = append(out, "Try quizzes in different subjects to develop well-rounded knowledge")
	}

	return out
}

const maxPersonalized = 5

// Personalized builds dashboard recommendations from the five most recent
// attempts.
func Personalized(attempts []store.Attempt) []string {
	if len(attempts) == 0 {
		return []string{"Take your first quiz to get personalized recommendations!"}
	}

	recent := attempts
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	var weak, strong []string
	for _, a := range recent {
		switch {
		case a.Score < 70:
			for _, ans := range a.Answers {
				if !ans.Correct && ans.Topic != "" {
					weak = append(weak, ans.Topic)
				}
			}
		case a.Score >= 85:
			strong = append(strong, a.Subject)
		}
	}

	var out []string
	if weak = unique(weak); len(weak) > 0 {
		if len(weak) > 3 {
			weak = weak[:3]
		}
		out = append(out, "Focus on improving: "+strings.Join(weak, ", "))
	}
	if strong = unique(strong); len(strong) > 0 {
		out = append(out, fmt.Sprintf("You're excelling in %s. Try advanced topics!", strings.Join(strong, ", ")))
	}
	out = append(out,
		"Take quizzes regularly to track your progress",
		"Review explanations for incorrect answers",
		"Try different difficulty levels to challenge yourself")

	if len(out) > maxPersonalized {
		out = out[:maxPersonalized]
	}
	return out
}

// unique drops repeats, keeping first-seen order.
func unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Sorted returns a copy of attempts ordered oldest first.
func Sorted(attempts []store.Attempt) []store.Attempt {
	out := append([]store.Attempt(nil), attempts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
