package models

// Lugar is a tourist point of interest as served by GET /lugares.
type Lugar struct {
	ID          int    `json:"id" bson:"id"`
	Nombre      string `json:"nombre" bson:"nombre"`
	Descripcion string `json:"descripcion" bson:"descripcion"`
	Categoria   string `json:"categoria" bson:"categoria"`
	ImagenURL   string `json:"imagen_url" bson:"imagen_url"`
	Direccion   string `json:"direccion,omitempty" bson:"direccion,omitempty"`
	Horario     string `json:"horario,omitempty" bson:"horario,omitempty"`
}

// Favorito joins a user with a place. FavoritoID is the favorite's own id and
// is the one DELETE expects; LugarID is the referenced place.
type Favorito struct {
	FavoritoID  int    `json:"favorito_id"`
	LugarID     int    `json:"lugar_id"`
	Nombre      string `json:"nombre"`
	ImagenURL   string `json:"imagen_url"`
	Categoria   string `json:"categoria"`
	Descripcion string `json:"descripcion"`
}

// Resena is a review with the reviewed place's display fields denormalized.
type Resena struct {
	ID           int    `json:"id"`
	LugarID      int    `json:"lugar_id"`
	LugarNombre  string `json:"lugar_nombre"`
	LugarImagen  string `json:"lugar_imagen"`
	Calificacion int    `json:"calificacion"`
	Texto        string `json:"texto"`
	CreatedAt    string `json:"created_at"`
}

// PlaceNote is a personal link/note a user pins to a place on the device.
type PlaceNote struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Note string `json:"note"`
}
