package gf2m

// Field163, Field173 and Field257 are the DSTU 4145-2002 Annex A
// reduction polynomials for the three named parameter degrees. M-163
// and M-257 back the two curves this module ships; M-173 is kept
// available since it appears in the standard's table but is not wired
// to a named domain.
var (
	Field163 = must(NewPentanomial(163, 7, 6, 3))
	Field173 = must(NewPentanomial(173, 10, 2, 1))
	Field257 = must(NewTrinomial(257, 12))
)

func must(f *Field, err error) *Field {
	if err != nil {
		panic(err)
	}
	return f
}
