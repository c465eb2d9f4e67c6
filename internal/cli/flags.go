package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag bound to a LocalDay.
type dateValue struct {
	day *dates.LocalDay
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(p *dates.LocalDay) *dateValue {
	return &dateValue{day: p}
}

func (v *dateValue) String() string {
	if v.day == nil {
		return ""
	}
	return v.day.String()
}

func (v *dateValue) Set(s string) error {
	d, err := dates.ParseLocalDay(s)
	if err != nil {
		return err
	}
	*v.day = d
	return nil
}

func (v *dateValue) Type() string { return "date" }

// parseStages validates --stage values.
func parseStages(raw []string) ([]domain.Stage, error) {
	out := make([]domain.Stage, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if !domain.ValidStages[s] {
			return nil, fmt.Errorf("invalid stage %q (expected planning, production, post_production or delivery)", s)
		}
		out = append(out, domain.Stage(s))
	}
	return out, nil
}

// rangeFromFlags builds the window given by --from and --to.
func rangeFromFlags(from, to dates.LocalDay) (dates.Range, error) {
	if from.IsZero() || to.IsZero() {
		return dates.Range{}, fmt.Errorf("--from and --to are required")
	}
	return dates.NewRange(from, to)
}
