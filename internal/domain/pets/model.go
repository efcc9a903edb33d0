package pets

import "time"

// PetType son las especies del catálogo de adopción.
type PetType string

const (
	TypeDog    PetType = "Dog"
	TypeCat    PetType = "Cat"
	TypeRabbit PetType = "Rabbit"
	TypeBird   PetType = "Bird"
	TypeOther  PetType = "Other"
)

// Pet es una mascota publicada para adopción por el equipo admin.
type Pet struct {
	ID   string
	Name string
	Type PetType

	Breed       string
	Age         int // años
	Description string

	// Price es el fee fijado a mano por un admin; si está presente y es
	// positivo, pisa el cálculo por especie/edad.
	Price *int

	ImageURL string

	Available bool
	Adopted   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
