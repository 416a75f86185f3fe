package data

// SampleUsers is the directory served when the flows are simulated.
func SampleUsers() []User {
	return []User{
		{Nombre: "Juan Pérez García", Cedula: "1234567890"},
		{Nombre: "María González López", Cedula: "9876543210"},
		{Nombre: "Carlos Rodríguez Martínez", Cedula: "5555555555"},
		{Nombre: "Ana Martínez Silva", Cedula: "1111111111"},
		{Nombre: "Pedro Sánchez Torres", Cedula: "2222222222"},
	}
}
