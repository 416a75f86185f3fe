package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	cases := []struct {
		name     string
		rule     Rule
		value    string
		required bool
		want     bool
	}{
		{"required empty", RuleText, "", true, false},
		{"required blank", RuleIdentifier, "   ", true, false},
		{"optional empty", RuleURL, "", false, true},
		{"cedula digits", RuleIdentifier, "1234567890", true, true},
		{"cedula trimmed", RuleIdentifier, " 1234 ", true, true},
		{"cedula with dots", RuleIdentifier, "1.234.567", true, false},
		{"cedula with letters", RuleIdentifier, "12a4", true, false},
		{"cedula arabic-indic digits", RuleIdentifier, "١٢٣", true, false},
		{"name accented", RuleName, "María José Núñez", true, true},
		{"name uppercase accents", RuleName, "ÁNGEL ÑUSTES", true, true},
		{"name with digit", RuleName, "Ana 2", true, false},
		{"name with punctuation", RuleName, "O'Brien", true, false},
		{"name with hyphen", RuleName, "Ana-María", true, false},
		{"money formatted", RuleMoney, "$ 1.234.567", true, true},
		{"money raw", RuleMoney, "1500000", true, true},
		{"money only symbol", RuleMoney, "$", true, true},
		{"money with comma", RuleMoney, "$ 1.234,50", true, false},
		{"money with letters", RuleMoney, "12k", false, false},
		{"url https", RuleURL, "https://drive.google.com/drive/folders/abc", false, true},
		{"url no scheme", RuleURL, "drive.google.com/abc", false, false},
		{"url garbage", RuleURL, "not a url", false, false},
		{"text anything", RuleText, "Reunión en Bogotá #3", true, true},
		{"date non-empty", RuleDate, "2024-03-07", true, true},
		{"choice non-empty", RuleChoice, "Aéreo", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Check(tc.rule, tc.value, tc.required))
		})
	}
}

func TestCheckNameUnicodeSpaces(t *testing.T) {
	for _, v := range []string{"Ana\u00a0María", "Luis\u2003Gómez", "Juan\tPérez"} {
		assert.True(t, Check(RuleName, v, true), v)
	}
	assert.False(t, Check(RuleName, "Ana\u00a0María2", true))
}

func TestCheckNameDecomposedAccent(t *testing.T) {
	// "José" with a combining acute accent instead of the precomposed é.
	assert.True(t, Check(RuleName, "Jose\u0301", true))
}

func TestCheckIdentifierAcceptsOnlyDigits(t *testing.T) {
	for _, v := range []string{"0", "007", "1111111111", "98765432109876543210"} {
		assert.True(t, Check(RuleIdentifier, v, true), v)
	}
	for _, v := range []string{"-1", "+57", "1 2", "1e5", "12_3"} {
		assert.False(t, Check(RuleIdentifier, v, true), v)
	}
}

func TestValidateFieldState(t *testing.T) {
	f := &Field{Name: "cedula", Rule: RuleIdentifier, Required: true, Value: "abc"}
	assert.False(t, ValidateField(f))
	assert.Equal(t, StateInvalid, f.State)

	f.Value = "123"
	assert.True(t, ValidateField(f))
	assert.Equal(t, StateValid, f.State)

	opt := &Field{Name: "linkSoportes", Rule: RuleURL, Value: "  ", State: StateInvalid}
	assert.True(t, ValidateField(opt))
	assert.Equal(t, StateNeutral, opt.State)
}

func TestValidateFormChecksEveryField(t *testing.T) {
	fields := []*Field{
		{Name: "nombre", Rule: RuleName, Required: true, Value: "Ana3"},
		{Name: "cedula", Rule: RuleIdentifier, Required: true, Value: ""},
		{Name: "lugar", Rule: RuleText, Required: true, Value: "Cali"},
	}
	assert.False(t, ValidateForm(fields))
	assert.Equal(t, StateInvalid, fields[0].State)
	assert.Equal(t, StateInvalid, fields[1].State)
	assert.Equal(t, StateValid, fields[2].State)

	err := Invalid(fields)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"nombre", "cedula"}, verr.Fields)
	assert.Contains(t, err.Error(), "nombre, cedula")
}

func TestInvalidNilWhenAllValid(t *testing.T) {
	fields := UserFields(userAna)
	require.True(t, ValidateForm(fields))
	assert.NoError(t, Invalid(fields))
}

func TestValidRule(t *testing.T) {
	assert.True(t, ValidRule(RuleMoney))
	assert.False(t, ValidRule(Rule("email")))
}
