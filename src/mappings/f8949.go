package mappings

import "fmt"

// RowsPerPage is the number of transaction rows one Form 8949 page holds.
const RowsPerPage = 14

// columnsPerRow is the number of writable cells per transaction row:
// description, date acquired, date sold, proceeds, cost, code, adjustment,
// gain/loss.
const columnsPerRow = 8

// f8949Table builds the Form 8949 table. The AcroForm field layout has been
// stable across the supported years: page 1 row cells run f1_3..f1_114 with
// the part I totals in f1_115..f1_118, and page 2 mirrors them as f2_*.
func f8949Table() Table {
	t := make(Table, 2*(RowsPerPage*columnsPerRow+4))
	for row := 0; row < RowsPerPage; row++ {
		for col := 0; col < columnsPerRow; col++ {
			n := 3 + row*columnsPerRow + col
			t[fmt.Sprintf("st_r%d_c%d", row, col)] =
				fmt.Sprintf("topmostSubform[0].Page1[0].Table_Line1[0].Row%d[0].f1_%d[0]", row+1, n)
			t[fmt.Sprintf("lt_r%d_c%d", row, col)] =
				fmt.Sprintf("topmostSubform[0].Page2[0].Table_Line1[0].Row%d[0].f2_%d[0]", row+1, n)
		}
	}
	t["st_total_proceed"] = "topmostSubform[0].Page1[0].f1_115[0]"
	t["st_total_cost"] = "topmostSubform[0].Page1[0].f1_116[0]"
	t["st_total_adj"] = "topmostSubform[0].Page1[0].f1_117[0]"
	t["st_total_gl"] = "topmostSubform[0].Page1[0].f1_118[0]"
	t["lt_total_proceed"] = "topmostSubform[0].Page2[0].f2_115[0]"
	t["lt_total_cost"] = "topmostSubform[0].Page2[0].f2_116[0]"
	t["lt_total_adj"] = "topmostSubform[0].Page2[0].f2_117[0]"
	t["lt_total_gl"] = "topmostSubform[0].Page2[0].f2_118[0]"
	return t
}
