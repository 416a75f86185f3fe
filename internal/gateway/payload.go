package gateway

import (
	"strings"
	"time"

	"viaticos/internal/data"
)

// Origen tags every record created from this form.
const Origen = "Formulario Web - Viáticos"

// registrationLayout matches JavaScript's Date.toISOString, which the flows
// were built against.
const registrationLayout = "2006-01-02T15:04:05.000Z"

// commissionPayload uses the SharePoint list column names.
type commissionPayload struct {
	Nombre               string `json:"Nombre"`
	Cedula               string `json:"Cedula"`
	LugarComision        string `json:"LugarComision"`
	FechaIda             string `json:"FechaIda"`
	FechaRegreso         string `json:"FechaRegreso"`
	FechaLegalizacion    string `json:"FechaLegalizacion"`
	ObjetoComision       string `json:"ObjetoComision"`
	NumeroCDP            string `json:"NumeroCDP"`
	NumeroRP             string `json:"NumeroRP"`
	NumeroObligacionSIIF string `json:"NumeroObligacionSIIF"`
	Rubro                string `json:"Rubro"`
	ValorTotal           string `json:"ValorTotal"`
	Legalizado           string `json:"Legalizado"`
	LinkSoportes         string `json:"LinkSoportes"`
	MedioTransporte      string `json:"MedioTransporte"`
	ValorTiquete         string `json:"ValorTiquete"`
	FechaRegistro        string `json:"FechaRegistro"`
	Origen               string `json:"Origen"`
}

type userPayload struct {
	Nombre        string `json:"Nombre"`
	Cedula        string `json:"Cedula"`
	FechaRegistro string `json:"FechaRegistro"`
	Origen        string `json:"Origen"`
}

func buildCommissionPayload(c data.Commission, now time.Time) commissionPayload {
	t := strings.TrimSpace
	return commissionPayload{
		Nombre:               t(c.Nombre),
		Cedula:               t(c.Cedula),
		LugarComision:        t(c.LugarComision),
		FechaIda:             t(c.FechaIda),
		FechaRegreso:         t(c.FechaRegreso),
		FechaLegalizacion:    t(c.FechaLegalizacion),
		ObjetoComision:       t(c.ObjetoComision),
		NumeroCDP:            t(c.NumeroCDP),
		NumeroRP:             t(c.NumeroRP),
		NumeroObligacionSIIF: t(c.NumeroObligacion),
		Rubro:                t(c.Rubro),
		ValorTotal:           t(c.ValorTotal),
		Legalizado:           t(c.Legalizado),
		LinkSoportes:         t(c.LinkSoportes),
		MedioTransporte:      t(c.MedioTransporte),
		ValorTiquete:         t(c.ValorTiquete),
		FechaRegistro:        now.UTC().Format(registrationLayout),
		Origen:               Origen,
	}
}

func buildUserPayload(u data.User, now time.Time) userPayload {
	return userPayload{
		Nombre:        strings.TrimSpace(u.Nombre),
		Cedula:        strings.TrimSpace(u.Cedula),
		FechaRegistro: now.UTC().Format(registrationLayout),
		Origen:        Origen,
	}
}
