package service

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesFromSales(sales ...string) []salesEntry {
	entries := make([]salesEntry, len(sales))
	for i, s := range sales {
		key := fmt.Sprintf("g%d", i+1)
		entries[i] = salesEntry{Key: key, Label: key, Sales: decimal.RequireFromString(s)}
	}
	return entries
}

func TestRankTopSalesFewerGroupsThanSlots(t *testing.T) {
	ranked, others := rankTopSales(entriesFromSales("30", "10", "20"))

	require.Len(t, ranked, 3)
	assert.Nil(t, others, "no overflow must yield no Others bucket")

	assert.Equal(t, "g1", ranked[0].Label)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "g3", ranked[1].Label)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "g2", ranked[2].Label)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestRankTopSalesExactlyFullSlots(t *testing.T) {
	ranked, others := rankTopSales(entriesFromSales("5", "4", "3", "2", "1"))

	require.Len(t, ranked, 5)
	assert.Nil(t, others)
}

func TestRankTopSalesOverflowSumsIntoOthers(t *testing.T) {
	ranked, others := rankTopSales(entriesFromSales("70", "60", "50", "40", "30", "20", "10"))

	require.Len(t, ranked, 5)
	require.NotNil(t, others)
	assert.True(t, others.Equal(decimal.NewFromInt(30)), "got %s", others)

	for i, want := range []string{"70", "60", "50", "40", "30"} {
		assert.True(t, ranked[i].Sales.Equal(decimal.RequireFromString(want)))
		assert.Equal(t, i+1, ranked[i].Rank)
	}
}

func TestRankTopSalesZeroValuedOverflowStillCounts(t *testing.T) {
	// a sixth group with zero sales produces an Others bucket of zero,
	// which is distinct from no bucket at all
	_, others := rankTopSales(entriesFromSales("5", "4", "3", "2", "1", "0"))

	require.NotNil(t, others)
	assert.True(t, others.IsZero())
}

func TestRankTopSalesTiesKeepFirstSeenOrder(t *testing.T) {
	entries := []salesEntry{
		{Key: "a", Label: "Alpha", Sales: decimal.NewFromInt(10)},
		{Key: "b", Label: "Beta", Sales: decimal.NewFromInt(10)},
		{Key: "c", Label: "Gamma", Sales: decimal.NewFromInt(10)},
	}

	ranked, _ := rankTopSales(entries)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Alpha", ranked[0].Label)
	assert.Equal(t, "Beta", ranked[1].Label)
	assert.Equal(t, "Gamma", ranked[2].Label)
}

func TestRankTopSalesDoesNotMutateInput(t *testing.T) {
	entries := entriesFromSales("1", "2", "3")

	rankTopSales(entries)

	assert.Equal(t, "g1", entries[0].Key)
	assert.True(t, entries[0].Sales.Equal(decimal.NewFromInt(1)))
}

func TestLeaderboardFlattening(t *testing.T) {
	ranked, others := rankTopSales(entriesFromSales("60", "50", "40", "30", "20", "10"))

	sales, names := leaderboard(ranked, others)

	require.Len(t, sales, 6)
	require.Len(t, names, 6)
	assert.Equal(t, "Others", names[5])
	assert.True(t, sales[5].Equal(decimal.NewFromInt(10)))
}

func TestLeaderboardWithoutOthers(t *testing.T) {
	ranked, others := rankTopSales(entriesFromSales("2", "1"))

	sales, names := leaderboard(ranked, others)

	assert.Len(t, sales, 2)
	assert.Equal(t, []string{"g1", "g2"}, names)
}
