package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/taxformfill/src/mappings"
	"github.com/username/taxformfill/src/models"
)

func TestValidateForm8949NoInstances(t *testing.T) {
	table, _ := mappings.ForYear(mappings.Form8949, mappings.DefaultYear)

	res := ValidateForm8949(models.FormsData{}, table)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, "no Form 8949 document instances")
}

func TestValidateForm8949CleanInstance(t *testing.T) {
	table, _ := mappings.ForYear(mappings.Form8949, mappings.DefaultYear)
	data := models.FormsData{
		"f8949_1": {
			table["st_r0_c0"]:         "10 sh. ACME",
			table["st_total_proceed"]: 1500.0,
			table["st_total_cost"]:    1000.0,
			table["st_total_gl"]:      500.0,
			table["st_total_adj"]:     0.0,
		},
	}

	res := ValidateForm8949(data, table)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateForm8949Warnings(t *testing.T) {
	table, _ := mappings.ForYear(mappings.Form8949, mappings.DefaultYear)
	data := models.FormsData{
		"f8949_1": {
			// Totals present but the first row description never got filled,
			// and proceeds came out negative.
			table["st_total_proceed"]: -100.0,
		},
		"f8949_2": {},
	}

	res := ValidateForm8949(data, table)

	// Warnings are advisory: the result stays valid.
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 3)

	messages := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		messages = append(messages, w.Message)
	}
	assert.Contains(t, messages, "f8949_1: proceeds total is negative")
	assert.Contains(t, messages, "f8949_1: first transaction row description is empty")
	assert.Contains(t, messages, "document instance has no fields")
}

func TestValidateForm1040(t *testing.T) {
	table, _ := mappings.ForYear(mappings.Form1040, mappings.DefaultYear)

	res := ValidateForm1040(models.FormsData{}, table)
	assert.False(t, res.IsValid)

	complete := models.FormsData{
		"f1040": {
			table["9"]:   60000.0,
			table["11"]:  58000.0,
			table["25a"]: 6000.0,
		},
	}
	res = ValidateForm1040(complete, table)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Warnings)

	problematic := models.FormsData{
		"f1040": {
			table["9"]:   60000.0,
			table["25a"]: -6000.0,
		},
	}
	res = ValidateForm1040(problematic, table)
	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 2)

	messages := []string{res.Warnings[0].Message, res.Warnings[1].Message}
	assert.Contains(t, messages, "f1040: required line 11 is empty")
	assert.Contains(t, messages, "f1040: line 25a is negative")
}

func TestValidationNeverMutatesData(t *testing.T) {
	table, _ := mappings.ForYear(mappings.Form8949, mappings.DefaultYear)
	fields := models.FieldMap{
		table["st_total_proceed"]: -100.0,
	}
	data := models.FormsData{"f8949_1": fields}

	_ = ValidateForm8949(data, table)

	require.Len(t, data, 1)
	require.Len(t, fields, 1)
	assert.Equal(t, -100.0, fields[table["st_total_proceed"]])
}
