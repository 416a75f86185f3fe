package form

import (
	"strings"

	"viaticos/internal/data"
)

// Directory is an immutable snapshot of the known users. It is small, so
// lookups are linear scans.
type Directory struct {
	users []data.User
}

func NewDirectory(users []data.User) *Directory {
	cp := make([]data.User, len(users))
	copy(cp, users)
	return &Directory{users: cp}
}

// Users returns a copy of the snapshot.
func (d *Directory) Users() []data.User {
	if d == nil {
		return []data.User{}
	}
	cp := make([]data.User, len(d.users))
	copy(cp, d.users)
	return cp
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.users)
}

func (d *Directory) ByName(nombre string) (data.User, bool) {
	for _, u := range d.usersOrNil() {
		if u.Nombre == nombre {
			return u, true
		}
	}
	return data.User{}, false
}

func (d *Directory) ByCedula(cedula string) (data.User, bool) {
	for _, u := range d.usersOrNil() {
		if u.Cedula == cedula {
			return u, true
		}
	}
	return data.User{}, false
}

func (d *Directory) usersOrNil() []data.User {
	if d == nil {
		return nil
	}
	return d.users
}

// SelectName fills the cedula of the selected user. An empty selection, or
// an empty directory, clears it.
func (d *Directory) SelectName(nombre, cedula *Field) {
	if nombre.Value == "" || d.Len() == 0 {
		cedula.Value = ""
		cedula.State = StateNeutral
		return
	}
	if u, ok := d.ByName(nombre.Value); ok {
		cedula.Value = u.Cedula
		cedula.State = StateValid
	}
}

// TypeIdentifier fills the name when the typed cedula belongs to a known user.
func (d *Directory) TypeIdentifier(cedula, nombre *Field) {
	value := strings.TrimSpace(cedula.Value)
	if value == "" || d.Len() == 0 {
		return
	}
	if u, ok := d.ByCedula(value); ok {
		nombre.Value = u.Nombre
		nombre.State = StateValid
		cedula.State = StateValid
	}
}

// LeaveIdentifier clears the name when the cedula no longer matches anyone.
func (d *Directory) LeaveIdentifier(cedula, nombre *Field) {
	value := strings.TrimSpace(cedula.Value)
	if value == "" || d.Len() == 0 {
		return
	}
	if _, ok := d.ByCedula(value); !ok {
		nombre.Value = ""
		nombre.State = StateNeutral
	}
}
