package forms

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/taxformfill/src/mappings"
	"github.com/username/taxformfill/src/models"
)

func makeTxs(n int) []models.Transaction {
	txs := make([]models.Transaction, n)
	for i := range txs {
		txs[i] = models.Transaction{
			Quantity:      float64(i + 1),
			Name:          fmt.Sprintf("TX%d", i),
			PurchaseDate:  time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			SellDate:      time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
			PurchasePrice: 100,
			SellPrice:     110,
			Adjustment:    1,
			IsShortTerm:   true,
		}
	}
	return txs
}

func TestBuildChunks(t *testing.T) {
	chunks := BuildChunks(makeTxs(20))
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0].Transactions, ChunkCapacity)
	assert.Len(t, chunks[1].Transactions, 6)

	// Order is preserved across the chunk boundary.
	assert.Equal(t, "TX0", chunks[0].Transactions[0].Name)
	assert.Equal(t, "TX13", chunks[0].Transactions[13].Name)
	assert.Equal(t, "TX14", chunks[1].Transactions[0].Name)
}

func TestBuildChunksTotals(t *testing.T) {
	txs := makeTxs(20)
	chunks := BuildChunks(txs)

	var wantProceeds, wantCost, wantGL, wantAdj float64
	for _, tx := range txs {
		wantProceeds += tx.SellPrice
		wantCost += tx.PurchasePrice
		wantGL += tx.GainLoss()
		wantAdj += tx.Adjustment
	}
	var gotProceeds, gotCost, gotGL, gotAdj float64
	for _, c := range chunks {
		gotProceeds += c.TotalProceeds
		gotCost += c.TotalCost
		gotGL += c.TotalGainLoss
		gotAdj += c.TotalAdjustment
	}

	assert.InDelta(t, wantProceeds, gotProceeds, 1e-9)
	assert.InDelta(t, wantCost, gotCost, 1e-9)
	assert.InDelta(t, wantGL, gotGL, 1e-9)
	assert.InDelta(t, wantAdj, gotAdj, 1e-9)
}

func TestBuildChunksEmpty(t *testing.T) {
	assert.Empty(t, BuildChunks(nil))
}

func TestProjectChunk(t *testing.T) {
	table, _ := mappings.ForYear(mappings.Form8949, mappings.DefaultYear)
	txs := makeTxs(2)
	txs[0].Code = "W"
	chunk := BuildChunks(txs)[0]

	fields := ProjectChunk(chunk, "st", table)

	// Row 0: description composed of quantity and name, dates formatted,
	// code present because it was set.
	assert.Equal(t, "1 sh. TX0", fields[table["st_r0_c0"]])
	assert.Equal(t, "01/01/2021", fields[table["st_r0_c1"]])
	assert.Equal(t, "06/01/2021", fields[table["st_r0_c2"]])
	assert.Equal(t, 110.0, fields[table["st_r0_c3"]])
	assert.Equal(t, 100.0, fields[table["st_r0_c4"]])
	assert.Equal(t, "W", fields[table["st_r0_c5"]])
	assert.Equal(t, 1.0, fields[table["st_r0_c6"]])
	assert.Equal(t, 9.0, fields[table["st_r0_c7"]])

	// Row 1 has no code, so its code cell is absent entirely.
	_, hasCode := fields[table["st_r1_c5"]]
	assert.False(t, hasCode)

	assert.Equal(t, 220.0, fields[table["st_total_proceed"]])
	assert.Equal(t, 200.0, fields[table["st_total_cost"]])
	assert.Equal(t, 18.0, fields[table["st_total_gl"]])
	assert.Equal(t, 2.0, fields[table["st_total_adj"]])
}

func TestMergeChunkPages(t *testing.T) {
	table, _ := mappings.ForYear(mappings.Form8949, mappings.DefaultYear)
	shortMaps := projectAll(BuildChunks(makeTxs(20)), "st", table)
	longMaps := projectAll(BuildChunks(makeTxs(3)), "lt", table)
	require.Len(t, shortMaps, 2)
	require.Len(t, longMaps, 1)

	formIDs, data := MergeChunkPages(shortMaps, longMaps, "f8949")

	// Instance count is the max of the two sides, not the sum.
	assert.Equal(t, []string{"f8949_1", "f8949_2"}, formIDs)
	require.Len(t, data, 2)

	// First instance carries both classifications, second only short-term.
	assert.Contains(t, data["f8949_1"], table["st_r0_c0"])
	assert.Contains(t, data["f8949_1"], table["lt_r0_c0"])
	assert.Contains(t, data["f8949_2"], table["st_r0_c0"])
	assert.NotContains(t, data["f8949_2"], table["lt_r0_c0"])

	// The union loses nothing: page 1 holds every field of both sides.
	assert.Len(t, data["f8949_1"], len(shortMaps[0])+len(longMaps[0]))
}

func TestMergeChunkPagesEmpty(t *testing.T) {
	formIDs, data := MergeChunkPages(nil, nil, "f8949")
	assert.Empty(t, formIDs)
	assert.Empty(t, data)
}
