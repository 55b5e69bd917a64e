package models

// Usuario is the user record returned by /login and /registro and persisted
// as the device session.
type Usuario struct {
	ID     int    `json:"id" bson:"id"`
	Nombre string `json:"nombre" bson:"nombre"`
	Email  string `json:"email" bson:"email"`
	Token  string `json:"token,omitempty" bson:"token,omitempty"`
}

const (
	DefaultBio       = "🎒 Explorador de PachaQutec"
	DefaultUbicacion = "Arequipa, Perú"
)

// ProfileDetail holds the device-local overrides shown on a profile screen.
type ProfileDetail struct {
	Nombre    string `json:"nombre,omitempty"`
	Bio       string `json:"bio"`
	Ubicacion string `json:"ubicacion"`
}

// Profile is a user merged with its local overrides.
type Profile struct {
	Usuario
	Bio       string `json:"bio"`
	Ubicacion string `json:"ubicacion"`
}
