package service

import (
	"sort"

	"github.com/shopspring/decimal"
)

// displayNumRanks is the number of ranked slots in a leaderboard; every
// group beyond it is rolled into the synthetic "Others" bucket.
const displayNumRanks = 5

// othersLabel names the rollup bucket in leaderboard output.
const othersLabel = "Others"

// salesEntry is one group's cumulative sales before ranking. Key is the
// grouping identity (payor ID, lowercased product name); Label is what
// the leaderboard displays.
type salesEntry struct {
	Key   string
	Label string
	Sales decimal.Decimal
}

// rankedSales is one ranked leaderboard row, rank starting at 1.
type rankedSales struct {
	Label string
	Sales decimal.Decimal
	Rank  int
}

// rankTopSales sorts the entries by sales descending and returns the
// top ranked groups plus the summed remainder. The sort is stable:
// groups with equal sales keep their incoming relative order, which is
// first-seen record order for both leaderboards. A nil others value
// means nothing overflowed the ranked slots, which callers must keep
// distinct from an Others bucket that genuinely sums to zero.
func rankTopSales(entries []salesEntry) ([]rankedSales, *decimal.Decimal) {
	sorted := make([]salesEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sales.GreaterThan(sorted[j].Sales)
	})

	ranked := make([]rankedSales, 0, displayNumRanks)
	var others *decimal.Decimal

	for i, entry := range sorted {
		if i < displayNumRanks {
			ranked = append(ranked, rankedSales{
				Label: entry.Label,
				Sales: entry.Sales,
				Rank:  i + 1,
			})
			continue
		}
		if others == nil {
			others = &decimal.Decimal{}
		}
		sum := others.Add(entry.Sales)
		others = &sum
	}

	return ranked, others
}

// leaderboard flattens ranked rows plus the optional Others bucket into
// the parallel sales/names series the dashboard renders.
func leaderboard(ranked []rankedSales, others *decimal.Decimal) ([]decimal.Decimal, []string) {
	sales := make([]decimal.Decimal, 0, len(ranked)+1)
	names := make([]string, 0, len(ranked)+1)

	for _, row := range ranked {
		sales = append(sales, row.Sales)
		names = append(names, row.Label)
	}
	if others != nil {
		sales = append(sales, *others)
		names = append(names, othersLabel)
	}

	return sales, names
}
