package data

// User is a person that can request a commission. Cedula is the unique key.
type User struct {
	Nombre string `json:"nombre"`
	Cedula string `json:"cedula"`
}

// Commission is a travel/expense reimbursement request as edited in the form.
// Dates are ISO YYYY-MM-DD while editing; amounts are whole pesos.
type Commission struct {
	Nombre            string `json:"nombre"`
	Cedula            string `json:"cedula"`
	LugarComision     string `json:"lugarComision"`
	FechaIda          string `json:"fechaIda"`
	FechaRegreso      string `json:"fechaRegreso"`
	FechaLegalizacion string `json:"fechaLegalizacion"`
	ObjetoComision    string `json:"objetoComision"`
	NumeroCDP         string `json:"numeroCDP"`
	NumeroRP          string `json:"numeroRP"`
	NumeroObligacion  string `json:"numeroObligacion"`
	Rubro             string `json:"rubro"`
	ValorTotal        string `json:"valorTotal"`
	Legalizado        string `json:"legalizado"`
	LinkSoportes      string `json:"linkSoportes"`
	MedioTransporte   string `json:"medioTransporte"`
	ValorTiquete      string `json:"valorTiquete"`
}
