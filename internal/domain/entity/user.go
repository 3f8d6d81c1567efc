package entity

// User usuario con acceso al dashboard. Nunca sale del Auth Gate con el hash.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt
}
