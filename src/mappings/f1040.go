package mappings

// Form 1040 tables are keyed by the normalized (lower-cased, trimmed) line
// label found in the sheet's variable column.

func f1040TY2021() Table {
	return Table{
		"1":   "topmostSubform[0].Page1[0].f1_09[0]",
		"2a":  "topmostSubform[0].Page1[0].f1_10[0]",
		"2b":  "topmostSubform[0].Page1[0].f1_11[0]",
		"3a":  "topmostSubform[0].Page1[0].f1_12[0]",
		"3b":  "topmostSubform[0].Page1[0].f1_13[0]",
		"4a":  "topmostSubform[0].Page1[0].f1_14[0]",
		"4b":  "topmostSubform[0].Page1[0].f1_15[0]",
		"5a":  "topmostSubform[0].Page1[0].f1_16[0]",
		"5b":  "topmostSubform[0].Page1[0].f1_17[0]",
		"6a":  "topmostSubform[0].Page1[0].f1_18[0]",
		"6b":  "topmostSubform[0].Page1[0].f1_19[0]",
		"7":   "topmostSubform[0].Page1[0].f1_20[0]",
		"8":   "topmostSubform[0].Page1[0].f1_21[0]",
		"9":   "topmostSubform[0].Page1[0].f1_22[0]",
		"10":  "topmostSubform[0].Page1[0].f1_23[0]",
		"11":  "topmostSubform[0].Page1[0].f1_24[0]",
		"12a": "topmostSubform[0].Page1[0].f1_25[0]",
		"12b": "topmostSubform[0].Page1[0].f1_26[0]",
		"12c": "topmostSubform[0].Page1[0].f1_27[0]",
		"13":  "topmostSubform[0].Page1[0].f1_28[0]",
		"14":  "topmostSubform[0].Page1[0].f1_29[0]",
		"15":  "topmostSubform[0].Page1[0].f1_30[0]",
		"16":  "topmostSubform[0].Page2[0].f2_01[0]",
		"17":  "topmostSubform[0].Page2[0].f2_02[0]",
		"18":  "topmostSubform[0].Page2[0].f2_03[0]",
		"19":  "topmostSubform[0].Page2[0].f2_04[0]",
		"20":  "topmostSubform[0].Page2[0].f2_05[0]",
		"21":  "topmostSubform[0].Page2[0].f2_06[0]",
		"22":  "topmostSubform[0].Page2[0].f2_07[0]",
		"23":  "topmostSubform[0].Page2[0].f2_08[0]",
		"24":  "topmostSubform[0].Page2[0].f2_09[0]",
		"25a": "topmostSubform[0].Page2[0].f2_10[0]",
		"25b": "topmostSubform[0].Page2[0].f2_11[0]",
		"25c": "topmostSubform[0].Page2[0].f2_12[0]",
		"25d": "topmostSubform[0].Page2[0].f2_13[0]",
	}
}

// The 2022 revision split line 1 into 1a-1h/1z; later supported years kept
// that layout.
func f1040TY2022() Table {
	t := Table{
		"1a": "topmostSubform[0].Page1[0].f1_09[0]",
		"1b": "topmostSubform[0].Page1[0].f1_10[0]",
		"1c": "topmostSubform[0].Page1[0].f1_11[0]",
		"1d": "topmostSubform[0].Page1[0].f1_12[0]",
		"1e": "topmostSubform[0].Page1[0].f1_13[0]",
		"1f": "topmostSubform[0].Page1[0].f1_14[0]",
		"1g": "topmostSubform[0].Page1[0].f1_15[0]",
		"1h": "topmostSubform[0].Page1[0].f1_16[0]",
		"1z": "topmostSubform[0].Page1[0].f1_17[0]",
	}
	base := f1040TY2021()
	for line, field := range base {
		if line == "1" {
			continue
		}
		if _, ok := t[line]; !ok {
			t[line] = field
		}
	}
	return t
}
