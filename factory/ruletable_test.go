package factory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rescisao-engine/factory"
	"github.com/warp/rescisao-engine/rules"
)

const minimalYAML = `
version: "test-1"
defaults:
  minimum_wage: 1600
reasons:
  - {code: "02", description: "Demitido SEM justa causa", category: SEM_JUSTA_CAUSA_EQUIVALENTE}
  - {code: "04", description: "Pedido de demissão", category: PEDIDO_DEMISSAO}
categories:
  SEM_JUSTA_CAUSA_EQUIVALENTE:
    accrued_salary: true
    expired_vacation: true
    proportional_vacation: true
    thirteenth_salary: true
    notice: true
    notice_reflexes: true
    fund_penalty_rate: 0.40
  PEDIDO_DEMISSAO:
    accrued_salary: true
    expired_vacation: true
    proportional_vacation: true
    thirteenth_salary: true
    withholds_unserved_notice: true
social_contribution:
  ceiling: 8157.41
  brackets:
    - {up_to: 1518.00, rate: 0.075}
    - {up_to: 2793.88, rate: 0.09}
    - {up_to: 4190.83, rate: 0.12}
    - {up_to: 8157.41, rate: 0.14}
income_tax:
  brackets:
    - {up_to: 2428.80, rate: 0}
    - {up_to: 2826.65, rate: 0.075, deduction: 182.16}
    - {up_to: 3751.05, rate: 0.15, deduction: 394.16}
    - {up_to: 4664.68, rate: 0.225, deduction: 675.49}
    - {rate: 0.275, deduction: "908.73"}
`

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// PARSING
// =============================================================================

func TestParseYAML(t *testing.T) {
	// GIVEN: a two-reason rule table
	f := factory.NewRuleTableFactory()

	// WHEN: parsing it
	table, err := f.ParseYAML([]byte(minimalYAML))
	require.NoError(t, err)

	// THEN: reasons resolve to their categories
	assert.Equal(t, "test-1", table.Version())
	_, category, err := table.Resolve("02")
	require.NoError(t, err)
	assert.True(t, category.PaysNotice)
	assert.True(t, category.ProjectsNotice)
	assert.True(t, category.FundPenaltyRate.Equal(d("0.40")))

	_, resignation, err := table.Resolve("04")
	require.NoError(t, err)
	assert.True(t, resignation.WithholdsUnservedNotice)
	assert.True(t, resignation.FundPenaltyRate.IsZero())

	// AND: the last income-tax bracket is unbounded
	brackets := table.IncomeTax().Brackets
	require.Len(t, brackets, 5)
	assert.True(t, brackets[4].Unbounded())
	assert.True(t, brackets[4].Deduction.Equal(d("908.73")))

	// AND: missing defaults come from the built-in table
	defaults := table.Defaults()
	assert.True(t, defaults.MinimumWage.Equal(d("1600")))
	assert.True(t, defaults.DependentDeduction.Equal(d("189.59")))
	assert.Equal(t, 30, defaults.DaysPerMonth)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"version": "json-1",
		"reasons": [{"code": "01", "description": "Justa causa", "category": "JUSTA_CAUSA"}],
		"categories": {"JUSTA_CAUSA": {"accrued_salary": true, "expired_vacation": true}},
		"social_contribution": {"ceiling": "8157.41", "brackets": [{"up_to": 8157.41, "rate": 0.14}]},
		"income_tax": {"brackets": [{"rate": 0.275, "deduction": 908.73}]}
	}`)

	table, err := factory.NewRuleTableFactory().ParseJSON(data)
	require.NoError(t, err)

	_, category, err := table.Resolve("01")
	require.NoError(t, err)
	assert.True(t, category.PaysExpiredVacation)
	assert.False(t, category.PaysProportionalVacation)
	assert.True(t, table.SocialContribution().Ceiling.Equal(d("8157.41")))
}

func TestParse_InvalidTable(t *testing.T) {
	// GIVEN: a reason pointing at an undefined category
	data := []byte(`
version: "broken"
reasons: [{code: "02", description: "x", category: GHOST}]
categories: {}
social_contribution: {ceiling: 100, brackets: [{up_to: 100, rate: 0.1}]}
income_tax: {brackets: [{rate: 0.1}]}
`)

	_, err := factory.NewRuleTableFactory().ParseYAML(data)

	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrInvalidTable)
}

func TestParse_MissingVersion(t *testing.T) {
	_, err := factory.NewRuleTableFactory().ParseJSON([]byte(`{"reasons": []}`))

	assert.ErrorContains(t, err, "version")
}

func TestParse_Malformed(t *testing.T) {
	f := factory.NewRuleTableFactory()

	_, err := f.ParseJSON([]byte(`{"version": `))
	assert.ErrorContains(t, err, "JSON")

	_, err = f.ParseYAML([]byte("version: [unterminated"))
	assert.ErrorContains(t, err, "YAML")

	_, err = f.Parse([]byte("{}"), factory.Format("toml"))
	assert.Error(t, err)
}

// =============================================================================
// ROUND TRIPS
// =============================================================================

func TestDefaultTable_RoundTrips(t *testing.T) {
	f := factory.NewRuleTableFactory()

	for _, tc := range []struct {
		name    string
		marshal func(*rules.Table) ([]byte, error)
		parse   func([]byte) (*rules.Table, error)
	}{
		{"json", f.MarshalJSON, f.ParseJSON},
		{"yaml", f.MarshalYAML, f.ParseYAML},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN: the built-in table encoded
			first, err := tc.marshal(rules.Default())
			require.NoError(t, err)

			// WHEN: decoding and encoding again
			table, err := tc.parse(first)
			require.NoError(t, err)
			second, err := tc.marshal(table)
			require.NoError(t, err)

			// THEN: the encoding is stable
			assert.Equal(t, string(first), string(second))

			// AND: every reason still resolves the same way
			assert.Equal(t, rules.Default().Reasons(), table.Reasons())
			for _, c := range rules.Default().Categories() {
				_, got, err := table.Resolve(reasonFor(c.Key))
				require.NoError(t, err)
				assert.Equal(t, c.PaysNotice, got.PaysNotice, c.Key)
				assert.True(t, c.FundPenaltyRate.Equal(got.FundPenaltyRate), c.Key)
				assert.True(t, c.ReductionMultiplier().Equal(got.ReductionMultiplier()), c.Key)
			}
		})
	}
}

func reasonFor(key rules.CategoryKey) rules.ReasonCode {
	for _, r := range rules.Default().Reasons() {
		if r.Category == key {
			return r.Code
		}
	}
	return ""
}

// =============================================================================
// FILES
// =============================================================================

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "rules.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(minimalYAML), 0o600))

	table, err := factory.NewRuleTableFactory().LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "test-1", table.Version())

	_, err = factory.NewRuleTableFactory().LoadFile(filepath.Join(dir, "rules.txt"))
	assert.ErrorContains(t, err, "extension")

	_, err = factory.NewRuleTableFactory().LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]factory.Format{
		"a.json":    factory.FormatJSON,
		"a.yaml":    factory.FormatYAML,
		"dir/b.YML": factory.FormatYAML,
	} {
		got, err := factory.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}
