// Package analytics aggregates labeled reviews into per-restaurant reports.
package analytics

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tsingjyujing/vireview/models"
	"github.com/tsingjyujing/vireview/text"
)

var (
	ErrMissingBasicInfo = errors.New("restaurant has incomplete basic information")
	ErrNotEnoughReviews = errors.New("restaurant has no labeled reviews")
)

const DefaultTopWords = 20

type Restaurant struct {
	ID          string
	Name        string
	Address     string
	OpeningTime string
	Price       string
}

type Review struct {
	Normalized string
	Label      string
	// Rating is nil when the review has no score.
	Rating *float64
	// Date is the zero time when unknown.
	Date time.Time
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type PeriodCount struct {
	Period int    `json:"period"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type AspectCount struct {
	Year   int    `json:"year"`
	Aspect string `json:"aspect"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type Report struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Address       string                 `json:"address"`
	OpeningTime   string                 `json:"opening_time"`
	Price         string                 `json:"price"`
	AverageRating float64                `json:"average_rating"`
	PositiveCount int                    `json:"positive_count"`
	NegativeCount int                    `json:"negative_count"`
	TopWords      map[string][]WordCount `json:"top_words"`
	ByYear        []PeriodCount          `json:"by_year"`
	ByMonth       []PeriodCount          `json:"by_month"`
	Aspects       []AspectCount          `json:"aspects"`
}

type Options struct {
	// IsStopWord filters words out of TopWords; nil keeps everything.
	IsStopWord func(word string) bool
	TopN       int
	// Aspects maps an aspect name to its keywords; nil uses DefaultAspects.
	Aspects map[string][]string
}

// Analyze builds the report of one restaurant. It fails with
// ErrMissingBasicInfo when name, address, opening time or price is blank and
// with ErrNotEnoughReviews when no review is labeled positive or negative.
func Analyze(restaurant Restaurant, reviews []Review, opts Options) (*Report, error) {
	if lo.SomeBy([]string{restaurant.Name, restaurant.Address, restaurant.OpeningTime, restaurant.Price}, isBlank) {
		return nil, ErrMissingBasicInfo
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopWords
	}
	if opts.Aspects == nil {
		opts.Aspects = DefaultAspects
	}
	report := &Report{
		ID:            restaurant.ID,
		Name:          restaurant.Name,
		Address:       restaurant.Address,
		OpeningTime:   restaurant.OpeningTime,
		Price:         restaurant.Price,
		AverageRating: averageRating(reviews),
		PositiveCount: lo.CountBy(reviews, func(r Review) bool { return r.Label == models.LabelPositive }),
		NegativeCount: lo.CountBy(reviews, func(r Review) bool { return r.Label == models.LabelNegative }),
	}
	if report.PositiveCount == 0 && report.NegativeCount == 0 {
		return nil, ErrNotEnoughReviews
	}
	report.TopWords = map[string][]WordCount{
		models.LabelPositive: topWords(reviews, models.LabelPositive, opts),
		models.LabelNegative: topWords(reviews, models.LabelNegative, opts),
	}
	dated := lo.Filter(reviews, func(r Review, _ int) bool { return !r.Date.IsZero() })
	report.ByYear = countByPeriod(dated, func(t time.Time) int { return t.Year() })
	report.ByMonth = countByPeriod(dated, func(t time.Time) int { return int(t.Month()) })
	report.Aspects = countAspects(dated, opts.Aspects)
	return report, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// averageRating is the mean of the known ratings rounded to two decimals.
func averageRating(reviews []Review) float64 {
	ratings := lo.FilterMap(reviews, func(r Review, _ int) (float64, bool) {
		if r.Rating == nil {
			return 0, false
		}
		return *r.Rating, true
	})
	if len(ratings) == 0 {
		return 0
	}
	return math.Round(lo.Sum(ratings)/float64(len(ratings))*100) / 100
}

func topWords(reviews []Review, label string, opts Options) []WordCount {
	counts := make(map[string]int)
	for _, r := range reviews {
		if r.Label != label {
			continue
		}
		for _, word := range strings.Fields(r.Normalized) {
			if opts.IsStopWord != nil && (opts.IsStopWord(word) || opts.IsStopWord(strings.ReplaceAll(word, "_", " "))) {
				continue
			}
			counts[word]++
		}
	}
	words := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		words = append(words, WordCount{Word: word, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if len(words) > opts.TopN {
		words = words[:opts.TopN]
	}
	return words
}

type periodKey struct {
	period int
	label  string
}

func countByPeriod(reviews []Review, period func(time.Time) int) []PeriodCount {
	counts := lo.CountValuesBy(reviews, func(r Review) periodKey {
		return periodKey{period: period(r.Date), label: r.Label}
	})
	out := make([]PeriodCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, PeriodCount{Period: key.period, Label: key.label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// stripNegation reduces "không_ngon" to "ngon" so negated aspect words
// still count toward their aspect.
func stripNegation(word string) string {
	return strings.TrimPrefix(word, text.DefaultNegationMarker+"_")
}
