package investor

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rise-platform/rise-edge/internal/ai"
)

// MaxSuggestions caps the list returned to the investor
const MaxSuggestions = 10

// Suggestion is a single item of the provider reply, returned to the client as is
type Suggestion = json.RawMessage

// ranking holds the only field read from a suggestion
type ranking struct {
	MatchScore Score `json:"matchScore"`
}

type scoredSuggestion struct {
	item  Suggestion
	score Score
}

// Score accepts numbers and numeric strings, anything else is zero
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*s = 0
		return nil
	}
	*s = Score(v)

	return nil
}

// ParseSuggestions decodes the provider reply, ranks it by score and applies the cap.
// Items keep every field the provider returned.
func ParseSuggestions(reply string) ([]Suggestion, error) {
	raw, err := ai.DecodeArray(reply)
	if err != nil {
		return nil, err
	}

	var list []Suggestion
	if err = json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w: %w", ai.ErrInvalidJSON, err)
	}

	scored := make([]scoredSuggestion, 0, len(list))
	for i, item := range list {
		var r ranking
		if err = json.Unmarshal(item, &r); err != nil {
			return nil, fmt.Errorf("decode suggestion #%d: %w: %w", i, ai.ErrInvalidJSON, err)
		}
		scored = append(scored, scoredSuggestion{item: item, score: r.MatchScore})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > MaxSuggestions {
		scored = scored[:MaxSuggestions]
	}

	ranked := make([]Suggestion, 0, len(scored))
	for _, sc := range scored {
		ranked = append(ranked, sc.item)
	}

	return ranked, nil
}
