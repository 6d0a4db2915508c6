package curve

import (
	"math/big"
	"sync"

	"github.com/sq26-yara/hybrid-post-quantum-signature/gf2m"
)

// Domain bundles a curve with a distinguished base point of known order
// and cofactor, the unit a DSTU 4145 signature scheme operates over.
type Domain struct {
	Curve    *EllipticCurve
	Base     Point
	Order    *big.Int
	Cofactor int64
}

func hexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: invalid hex constant " + s)
	}
	return v
}

var domainM163 *Domain

// DomainM163 returns the DSTU 4145-2002 Annex D.1 curve over GF(2^163)
// together with its officially published base point from Annex B.
func DomainM163() *Domain {
	if domainM163 != nil {
		return domainM163
	}
	f := gf2m.Field163
	b := f.NewElementFromInt(hexInt("5FF6108462A2DC8210AB403925E638A19C1455D21"))
	c, err := New(f, 1, b)
	if err != nil {
		panic(err)
	}

	order := hexInt("400000000000000000002BEC12BE2262D39BCF14D")
	gx := f.NewElementFromInt(hexInt("72D867F93A93AC27DF9FF01AFFE74885C8C540420"))
	gy := f.NewElementFromInt(hexInt("0224A9C3947852B97C5599D5F4AB81122ADC3FD9B"))

	domainM163 = &Domain{
		Curve:    c,
		Base:     Point{X: gx, Y: gy},
		Order:    order,
		Cofactor: 1,
	}
	return domainM163
}

var (
	domainM257     *Domain
	domainM257Once sync.Once
)

// DomainM257 returns the DSTU 4145-2002 curve over GF(2^257) with A=0.
// The standard's published tables give only the curve and the order of
// its base point, not the base point itself; unlike M-163, its base
// point is derived deterministically per 7.3/6.8 from a fixed seed, on
// first use, and memoized (this search runs the expensive order check
// that 7.3 requires, so it pays that cost once per process).
func DomainM257() *Domain {
	domainM257Once.Do(func() {
		f := gf2m.Field257
		b := f.NewElementFromInt(hexInt("1CEF494720115657E18F938D7A7942394FF9425C1458C57861F9EEA6ADBE3BE10"))
		c, err := New(f, 0, b)
		if err != nil {
			panic(err)
		}

		order := hexInt("800000000000000000000000000000006759213AF182E987D3E17714907D470D")

		base, err := c.ComputeBasePoint(newSeededReader(257), order, 1)
		if err != nil {
			panic(err)
		}

		domainM257 = &Domain{
			Curve:    c,
			Base:     base,
			Order:    order,
			Cofactor: 1,
		}
	})
	return domainM257
}
