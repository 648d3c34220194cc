package report

import (
	"bytes"
	"fmt"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"
)

// maxPieSlices is how many categories get their own slice before the
// remainder is folded into "Outras".
const maxPieSlices = 3

type slice struct {
	label string
	value float64
}

// topSlices orders the category totals by descending spend and folds
// everything past the top three into an "Outras" slice.
func topSlices(byCategory map[string]float64) []slice {
	all := make([]slice, 0, len(byCategory))
	for name, total := range byCategory {
		if total > 0 {
			all = append(all, slice{label: name, value: total})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].value != all[j].value {
			return all[i].value > all[j].value
		}
		return all[i].label < all[j].label
	})

	if len(all) <= maxPieSlices {
		return all
	}

	kept := all[:maxPieSlices]
	var rest float64
	for _, s := range all[maxPieSlices:] {
		rest += s.value
	}
	return append(kept, slice{label: "Outras", value: rest})
}

// categoryPie renders the card's spend-by-category pie as a PNG.
func categoryPie(byCategory map[string]float64) ([]byte, error) {
	slices := topSlices(byCategory)
	if len(slices) == 0 {
		return nil, fmt.Errorf("no positive spend to chart")
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (R$ %.2f)", s.label, s.value),
			Value: s.value,
		})
	}

	pie := chart.PieChart{
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering pie chart: %w", err)
	}
	return buf.Bytes(), nil
}
