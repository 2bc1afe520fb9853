package forms

import (
	"fmt"

	"github.com/username/taxformfill/src/logger"
	"github.com/username/taxformfill/src/mappings"
	"github.com/username/taxformfill/src/models"
	"github.com/username/taxformfill/src/utils"
)

// ChunkCapacity is the number of transaction rows one document instance
// holds.
const ChunkCapacity = mappings.RowsPerPage

// BuildChunks partitions an already single-classification transaction
// sequence into contiguous chunks of at most ChunkCapacity, preserving
// order, and computes each chunk's column totals.
func BuildChunks(txs []models.Transaction) []models.Chunk {
	var chunks []models.Chunk
	for start := 0; start < len(txs); start += ChunkCapacity {
		end := utils.MinInt(start+ChunkCapacity, len(txs))
		chunk := models.Chunk{Transactions: txs[start:end]}
		for _, t := range chunk.Transactions {
			chunk.TotalProceeds += t.SellPrice
			chunk.TotalCost += t.PurchasePrice
			chunk.TotalGainLoss += t.GainLoss()
			chunk.TotalAdjustment += t.Adjustment
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// ProjectChunk emits the chunk's logical cells under the classification
// prefix ("st" or "lt") and translates each through the mapping table into
// a physical field map. A logical key with no table entry is skipped with
// a logged warning rather than producing a bogus map key; the tables are
// expected to be complete, so a hit here means a table defect.
func ProjectChunk(chunk models.Chunk, prefix string, table mappings.Table) models.FieldMap {
	fields := make(models.FieldMap)
	put := func(logical string, value any) {
		physical, ok := table[logical]
		if !ok {
			logger.L.Warn("No mapping entry for logical cell, skipping", "cell", logical)
			return
		}
		fields[physical] = value
	}

	for i, t := range chunk.Transactions {
		cell := func(col int) string { return fmt.Sprintf("%s_r%d_c%d", prefix, i, col) }
		put(cell(0), fmt.Sprintf("%s sh. %s", utils.FormatQuantity(t.Quantity), t.Name))
		put(cell(1), utils.FormatDate(t.PurchaseDate))
		put(cell(2), utils.FormatDate(t.SellDate))
		put(cell(3), t.SellPrice)
		put(cell(4), t.PurchasePrice)
		if t.Code != "" {
			put(cell(5), t.Code)
		}
		put(cell(6), t.Adjustment)
		put(cell(7), t.GainLoss())
	}

	put(prefix+"_total_proceed", chunk.TotalProceeds)
	put(prefix+"_total_cost", chunk.TotalCost)
	put(prefix+"_total_gl", chunk.TotalGainLoss)
	put(prefix+"_total_adj", chunk.TotalAdjustment)

	return fields
}

// MergeChunkPages combines same-index short-term and long-term chunk field
// maps into document instances "{base}_1".."{base}_n". The union is safe
// because short- and long-term physical identifiers live in disjoint
// namespaces.
func MergeChunkPages(shortMaps, longMaps []models.FieldMap, baseFormID string) ([]string, models.FormsData) {
	n := utils.MaxInt(len(shortMaps), len(longMaps))
	formIDs := make([]string, 0, n)
	data := make(models.FormsData, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%s_%d", baseFormID, i)
		merged := make(models.FieldMap)
		if i-1 < len(shortMaps) {
			for k, v := range shortMaps[i-1] {
				merged[k] = v
			}
		}
		if i-1 < len(longMaps) {
			for k, v := range longMaps[i-1] {
				merged[k] = v
			}
		}
		formIDs = append(formIDs, id)
		data[id] = merged
	}
	return formIDs, data
}
