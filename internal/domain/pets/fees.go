package pets

import "math"

// Fees de adopción por especie, en la moneda menor de la tienda.
var baseFees = map[PetType]int{
	TypeDog:    2000,
	TypeCat:    1500,
	TypeRabbit: 1000,
	TypeBird:   800,
	TypeOther:  1000,
}

const fallbackFee = 1000

// AdoptionFee calcula el fee de adopción. Un precio explícito del admin
// gana siempre; si no, base por especie con descuento por edad: mayores de
// 5 años pagan el 70% de la base, mayores de 3 el 85%. El fee nunca sube
// con la edad.
func AdoptionFee(p Pet) int {
	if p.Price != nil && *p.Price > 0 {
		return *p.Price
	}

	fee, ok := baseFees[p.Type]
	if !ok || fee == 0 {
		fee = fallbackFee
	}

	switch {
	case p.Age > 5:
		fee = int(math.Round(float64(fee) * 0.70))
	case p.Age > 3:
		fee = int(math.Round(float64(fee) * 0.85))
	}

	return fee
}
