package devbackend

import "go-pacha/models"

// SeedPlaces is a small Arequipa catalog for local runs.
func SeedPlaces() []models.Lugar {
	return []models.Lugar{
		{
			ID:          1,
			Nombre:      "Monasterio de Santa Catalina",
			Descripcion: "Ciudadela religiosa de sillar fundada en 1579.",
			Categoria:   "Cultural",
			ImagenURL:   "https://images.pachaqutec.com/santa-catalina.jpg",
			Direccion:   "Calle Santa Catalina 301",
			Horario:     "08:00 - 17:00",
		},
		{
			ID:          2,
			Nombre:      "Mirador de Yanahuara",
			Descripcion: "Arcos de sillar con vista al Misti.",
			Categoria:   "Mirador",
			ImagenURL:   "https://images.pachaqutec.com/yanahuara.jpg",
			Direccion:   "Plaza de Yanahuara",
		},
		{
			ID:          3,
			Nombre:      "Cañón del Colca",
			Descripcion: "Uno de los cañones más profundos del mundo, hogar del cóndor andino.",
			Categoria:   "Naturaleza",
			ImagenURL:   "https://images.pachaqutec.com/colca.jpg",
		},
		{
			ID:          4,
			Nombre:      "Plaza de Armas de Arequipa",
			Descripcion: "Corazón de la Ciudad Blanca, rodeada de portales y la Catedral.",
			Categoria:   "Cultural",
			ImagenURL:   "https://images.pachaqutec.com/plaza-armas.jpg",
			Horario:     "Abierto todo el día",
		},
		{
			ID:          5,
			Nombre:      "Molino de Sabandía",
			Descripcion: "Molino colonial de piedra volcánica en la campiña.",
			Categoria:   "Historia",
			ImagenURL:   "https://images.pachaqutec.com/sabandia.jpg",
			Horario:     "09:00 - 17:00",
		},
	}
}
