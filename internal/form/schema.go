package form

import "viaticos/internal/data"

// CommissionFields declares the commission form with its current values.
// The requester name is picked from a list, so it is a choice, not a typed name.
func CommissionFields(c data.Commission) []*Field {
	return []*Field{
		{Name: "nombre", Rule: RuleChoice, Required: true, Value: c.Nombre},
		{Name: "cedula", Rule: RuleIdentifier, Required: true, Value: c.Cedula},
		{Name: "lugarComision", Rule: RuleText, Required: true, Value: c.LugarComision},
		{Name: "fechaIda", Rule: RuleDate, Required: true, Value: c.FechaIda},
		{Name: "fechaRegreso", Rule: RuleDate, Required: true, Value: c.FechaRegreso},
		{Name: "fechaLegalizacion", Rule: RuleDate, Required: true, Value: c.FechaLegalizacion},
		{Name: "objetoComision", Rule: RuleText, Required: true, Value: c.ObjetoComision},
		{Name: "numeroCDP", Rule: RuleText, Value: c.NumeroCDP},
		{Name: "numeroRP", Rule: RuleText, Value: c.NumeroRP},
		{Name: "numeroObligacion", Rule: RuleText, Value: c.NumeroObligacion},
		{Name: "rubro", Rule: RuleText, Value: c.Rubro},
		{Name: "valorTotal", Rule: RuleMoney, Required: true, Value: c.ValorTotal},
		{Name: "legalizado", Rule: RuleChoice, Value: c.Legalizado},
		{Name: "linkSoportes", Rule: RuleURL, Value: c.LinkSoportes},
		{Name: "medioTransporte", Rule: RuleChoice, Required: true, Value: c.MedioTransporte},
		{Name: "valorTiquete", Rule: RuleMoney, Value: c.ValorTiquete},
	}
}

// UserFields declares the user creation form.
func UserFields(u data.User) []*Field {
	return []*Field{
		{Name: "nombre", Rule: RuleName, Required: true, Value: u.Nombre},
		{Name: "cedula", Rule: RuleIdentifier, Required: true, Value: u.Cedula},
	}
}

// ForSubmission converts an edited commission into its outbound form:
// dates become DD/MM/YYYY and amounts lose their currency decoration.
func ForSubmission(c data.Commission) data.Commission {
	c.FechaIda = FormatDate(c.FechaIda)
	c.FechaRegreso = FormatDate(c.FechaRegreso)
	c.FechaLegalizacion = FormatDate(c.FechaLegalizacion)
	c.ValorTotal = ExtractNumeric(c.ValorTotal)
	c.ValorTiquete = ExtractNumeric(c.ValorTiquete)
	return c
}
