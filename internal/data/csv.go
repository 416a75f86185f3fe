package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadUsersCSV loads a user list from a CSV file with a "nombre,cedula"
// header. Column order is free and extra columns are ignored.
func ReadUsersCSV(path string) ([]User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseUsersCSV(f)
}

func ParseUsersCSV(r io.Reader) ([]User, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv vacío")
		}
		return nil, err
	}
	nameCol, idCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "nombre":
			nameCol = i
		case "cedula", "cédula":
			idCol = i
		}
	}
	if nameCol < 0 || idCol < 0 {
		return nil, fmt.Errorf("encabezado inválido %q: se esperan columnas nombre y cedula", header)
	}

	users := []User{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return users, nil
		}
		if err != nil {
			return nil, err
		}
		if nameCol >= len(row) || idCol >= len(row) {
			return nil, fmt.Errorf("línea %d: faltan columnas", line)
		}
		u := User{Nombre: strings.TrimSpace(row[nameCol]), Cedula: strings.TrimSpace(row[idCol])}
		if u.Nombre == "" && u.Cedula == "" {
			continue
		}
		users = append(users, u)
	}
}
