package catalog

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"bccrdata/lib/textutil"
	"bccrdata/lib/timeseries"

	"github.com/antzucaro/matchr"
)

// ErrNoSelector is returned when a search names neither a phrase nor
// any terms.
var ErrNoSelector = errors.New("search needs one of: phrase, all-terms, any-terms")

type SearchRequest struct {
	// Phrase matches entries containing the exact phrase.
	Phrase string
	// All matches entries containing every space-separated term, in
	// any order.
	All string
	// Any matches entries containing at least one term.
	Any string
	// Frequency, when non-empty, keeps only entries of that native
	// frequency.
	Frequency timeseries.Frequency
}

type SearchKind string

const (
	KindChart     SearchKind = "chart"
	KindIndicator SearchKind = "indicator"
)

type SearchResult struct {
	Kind        SearchKind
	Code        string
	Title       string
	Description string
	Frequency   timeseries.Frequency
	// Score ranks hits by similarity to the query, higher first.
	Score float64
}

// Search scans chart titles/subtitles and indicator names/descriptions.
// Matching is case- and accent-insensitive; results are ordered by
// Jaro-Winkler similarity between the query and the entry title.
func (s Store) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	match, query, err := compileMatcher(req)
	if err != nil {
		return nil, err
	}

	charts, err := s.allCharts(ctx)
	if err != nil {
		return nil, err
	}
	indicators, err := s.allIndicators(ctx)
	if err != nil {
		return nil, err
	}

	var out []SearchResult
	for _, c := range charts {
		if req.Frequency != "" && c.Frequency != req.Frequency {
			continue
		}
		haystack := textutil.Fold(c.Title + " " + c.Subtitle)
		if !match(haystack) {
			continue
		}
		out = append(out, SearchResult{
			Kind:        KindChart,
			Code:        strconv.Itoa(c.Code),
			Title:       c.Title,
			Description: c.Subtitle,
			Frequency:   c.Frequency,
			Score:       matchr.JaroWinkler(query, textutil.Fold(c.Title), true),
		})
	}
	for _, ind := range indicators {
		if req.Frequency != "" && ind.Frequency != req.Frequency {
			continue
		}
		haystack := textutil.Fold(ind.Name + " " + ind.Description)
		if !match(haystack) {
			continue
		}
		out = append(out, SearchResult{
			Kind:        KindIndicator,
			Code:        ind.Code,
			Title:       ind.Name,
			Description: ind.Description,
			Frequency:   ind.Frequency,
			Score:       matchr.JaroWinkler(query, textutil.Fold(ind.Name), true),
		})
	}

	slices.SortStableFunc(out, func(a, b SearchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return strings.Compare(a.Code, b.Code)
	})
	return out, nil
}

func compileMatcher(req SearchRequest) (func(string) bool, string, error) {
	switch {
	case req.Phrase != "":
		phrase := textutil.Fold(req.Phrase)
		return func(haystack string) bool {
			return strings.Contains(haystack, phrase)
		}, phrase, nil

	case req.All != "":
		terms := textutil.Terms(req.All)
		return func(haystack string) bool {
			for _, t := range terms {
				if !strings.Contains(haystack, t) {
					return false
				}
			}
			return true
		}, textutil.Fold(req.All), nil

	case req.Any != "":
		terms := textutil.Terms(req.Any)
		return func(haystack string) bool {
			for _, t := range terms {
				if strings.Contains(haystack, t) {
					return true
				}
			}
			return false
		}, textutil.Fold(req.Any), nil
	}
	return nil, "", ErrNoSelector
}

// Subaccounts returns the indicators nested under the account of the
// given indicator. Accounts are dotted paths where trailing "00"
// segments mean "unused depth": E02.01.00.… is the parent of
// E02.01.03.….
func (s Store) Subaccounts(ctx context.Context, code string) ([]IndicatorInfo, error) {
	parent, err := s.Indicator(ctx, code)
	if err != nil {
		return nil, err
	}
	parentPath := trimAccount(parent.Account)

	indicators, err := s.allIndicators(ctx)
	if err != nil {
		return nil, err
	}

	var out []IndicatorInfo
	for _, ind := range indicators {
		if ind.Code == parent.Code {
			continue
		}
		path := trimAccount(ind.Account)
		if strings.HasPrefix(path, parentPath+".") {
			out = append(out, ind)
		}
	}
	return out, nil
}

func trimAccount(account string) string {
	segments := strings.Split(account, ".")
	for len(segments) > 1 && segments[len(segments)-1] == "00" {
		segments = segments[:len(segments)-1]
	}
	return strings.Join(segments, ".")
}
