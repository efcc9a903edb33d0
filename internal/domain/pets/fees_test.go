package pets

import "testing"

func TestAdoptionFee_BaseBySpecies(t *testing.T) {
	cases := []struct {
		typ  PetType
		want int
	}{
		{TypeDog, 2000},
		{TypeCat, 1500},
		{TypeRabbit, 1000},
		{TypeBird, 800},
		{TypeOther, 1000},
		{PetType("ferret"), 1000}, // especie desconocida cae al fallback
	}
	for _, c := range cases {
		if got := AdoptionFee(Pet{Type: c.typ, Age: 1}); got != c.want {
			t.Errorf("fee for %s: got %d want %d", c.typ, got, c.want)
		}
	}
}

func TestAdoptionFee_SeniorDiscount(t *testing.T) {
	if got := AdoptionFee(Pet{Type: TypeDog, Age: 6}); got != 1400 {
		t.Fatalf("dog age 6: got %d want 1400", got)
	}
	if got := AdoptionFee(Pet{Type: TypeDog, Age: 4}); got != 1700 {
		t.Fatalf("dog age 4: got %d want 1700", got)
	}
	if got := AdoptionFee(Pet{Type: TypeCat, Age: 6}); got != 1050 {
		t.Fatalf("cat age 6: got %d want 1050", got)
	}
}

func TestAdoptionFee_NeverIncreasesWithAge(t *testing.T) {
	for _, typ := range []PetType{TypeDog, TypeCat, TypeRabbit, TypeBird, TypeOther} {
		prev := AdoptionFee(Pet{Type: typ, Age: 0})
		for age := 1; age <= 15; age++ {
			fee := AdoptionFee(Pet{Type: typ, Age: age})
			if fee > prev {
				t.Fatalf("%s: fee increased from %d to %d at age %d", typ, prev, fee, age)
			}
			prev = fee
		}
	}
}

func TestAdoptionFee_AdminPriceOverride(t *testing.T) {
	price := 50
	// El override ignora especie y descuento por edad.
	if got := AdoptionFee(Pet{Type: TypeDog, Age: 10, Price: &price}); got != 50 {
		t.Fatalf("price override: got %d want 50", got)
	}

	zero := 0
	if got := AdoptionFee(Pet{Type: TypeDog, Age: 1, Price: &zero}); got != 2000 {
		t.Fatalf("zero price must not override: got %d want 2000", got)
	}
}
