package form

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// Rule tells the validator which class of value a field holds.
type Rule string

const (
	RuleText       Rule = "texto"
	RuleIdentifier Rule = "cedula"
	RuleName       Rule = "nombre"
	RuleMoney      Rule = "monto"
	RuleURL        Rule = "enlace"
	RuleDate       Rule = "fecha"
	RuleChoice     Rule = "seleccion"
)

// State is the visual classification the UI applies to a field.
type State string

const (
	StateNeutral State = ""
	StateValid   State = "valid"
	StateInvalid State = "invalid"
)

// Field is one declared form input together with its current value.
type Field struct {
	Name     string `json:"campo"`
	Rule     Rule   `json:"regla"`
	Required bool   `json:"requerido"`
	Value    string `json:"valor"`
	State    State  `json:"estado"`
}

// ValidationError lists the fields that blocked a submission.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campos inválidos: %s", strings.Join(e.Fields, ", "))
}

var (
	digitsRe = regexp.MustCompile(`^\d+$`)

	// Whitespace as browsers match \s, Unicode spaces included.
	nameRe = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\p{Zs}\t\n\v\f\r\x{2028}\x{2029}\x{FEFF}]+$`)
)

// ruleTags maps a rule to the validator tag that checks a non-empty value.
var ruleTags = map[Rule]string{
	RuleIdentifier: "cedula",
	RuleName:       "nombre",
	RuleMoney:      "monto",
	RuleURL:        "url",
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	must(v.RegisterValidation("cedula", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("nombre", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(norm.NFC.String(fl.Field().String()))
	}))
	must(v.RegisterValidation("monto", func(fl validator.FieldLevel) bool {
		n := ExtractNumeric(fl.Field().String())
		return n == "" || digitsRe.MatchString(n)
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Check reports whether value satisfies rule, with no side effects.
func Check(rule Rule, value string, required bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return !required
	}
	tag, ok := ruleTags[rule]
	if !ok {
		return true
	}
	return validate.Var(value, tag) == nil
}

// ValidateField checks f and records the resulting state on it.
// An empty optional field is valid and left neutral.
func ValidateField(f *Field) bool {
	ok := Check(f.Rule, f.Value, f.Required)
	switch {
	case !ok:
		f.State = StateInvalid
	case strings.TrimSpace(f.Value) == "":
		f.State = StateNeutral
	default:
		f.State = StateValid
	}
	return ok
}

// ValidateForm validates every field, without stopping at the first failure,
// so each one carries its state for rendering.
func ValidateForm(fields []*Field) bool {
	valid := true
	for _, f := range fields {
		if !ValidateField(f) {
			valid = false
		}
	}
	return valid
}

// Invalid returns a *ValidationError naming the invalid fields, or nil.
func Invalid(fields []*Field) error {
	var names []string
	for _, f := range fields {
		if f.State == StateInvalid {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &ValidationError{Fields: names}
}

// ValidRule reports whether r is a known rule.
func ValidRule(r Rule) bool {
	switch r {
	case RuleText, RuleIdentifier, RuleName, RuleMoney, RuleURL, RuleDate, RuleChoice:
		return true
	}
	return false
}
