// Package unit implements the physical unit vocabulary used by property
// records.
//
// Units are written as structured-text expressions such as
// "kilogram / meter ** 3" or "kilojoule / mole". Parse resolves an
// expression into a base-dimension vector and a conversion factor to SI
// base units, which is what makes quantities with different units
// comparable:
//
//	u, err := unit.Parse("gram / centimeter ** 3")
//	q := unit.NewQuantity(0.785, u)
//	converted, err := q.ConvertTo(unit.KilogramPerCubicMeter) // 785.0
//
// The vocabulary is a fixed table of named units plus the standard SI
// prefixes, so "kilopascal" or "centimeter" resolve without their own table
// entries. All conversions are by fixed multiplicative factor; offset scales
// such as celsius are deliberately absent, temperatures are always kelvin.
package unit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"physprop/errs"
)

// Dimension is the exponent vector of a unit over the seven SI base
// dimensions. Two units are convertible exactly when their Dimension values
// are equal.
type Dimension struct {
	Mass        int8
	Length      int8
	Time        int8
	Temperature int8
	Amount      int8
	Current     int8
	Luminosity  int8
}

// IsZero reports whether the dimension vector is dimensionless.
func (d Dimension) IsZero() bool {
	return d == Dimension{}
}

func (d Dimension) String() string {
	if d.IsZero() {
		return "dimensionless"
	}

	parts := make([]string, 0, 7)
	appendDim := func(name string, exp int8) {
		if exp != 0 {
			parts = append(parts, fmt.Sprintf("[%s]^%d", name, exp))
		}
	}
	appendDim("mass", d.Mass)
	appendDim("length", d.Length)
	appendDim("time", d.Time)
	appendDim("temperature", d.Temperature)
	appendDim("amount", d.Amount)
	appendDim("current", d.Current)
	appendDim("luminosity", d.Luminosity)

	return strings.Join(parts, " ")
}

// scale scales every exponent by the given unit exponent.
func (d Dimension) scale(exp int) Dimension {
	e := int8(exp)
	return Dimension{
		Mass:        d.Mass * e,
		Length:      d.Length * e,
		Time:        d.Time * e,
		Temperature: d.Temperature * e,
		Amount:      d.Amount * e,
		Current:     d.Current * e,
		Luminosity:  d.Luminosity * e,
	}
}

// add combines two dimension vectors.
func (d Dimension) add(o Dimension) Dimension {
	return Dimension{
		Mass:        d.Mass + o.Mass,
		Length:      d.Length + o.Length,
		Time:        d.Time + o.Time,
		Temperature: d.Temperature + o.Temperature,
		Amount:      d.Amount + o.Amount,
		Current:     d.Current + o.Current,
		Luminosity:  d.Luminosity + o.Luminosity,
	}
}

// namedUnit is one entry of the unit vocabulary: a conversion factor to SI
// base units and a base-dimension vector.
type namedUnit struct {
	factor float64
	dim    Dimension
}

var vocabulary = map[string]namedUnit{
	"dimensionless": {1, Dimension{}},

	"gram":  {1e-3, Dimension{Mass: 1}},
	"tonne": {1e3, Dimension{Mass: 1}},

	"meter":    {1, Dimension{Length: 1}},
	"angstrom": {1e-10, Dimension{Length: 1}},
	"liter":    {1e-3, Dimension{Length: 3}},

	"second": {1, Dimension{Time: 1}},
	"minute": {60, Dimension{Time: 1}},
	"hour":   {3600, Dimension{Time: 1}},

	"kelvin": {1, Dimension{Temperature: 1}},

	"mole": {1, Dimension{Amount: 1}},

	"ampere":  {1, Dimension{Current: 1}},
	"candela": {1, Dimension{Luminosity: 1}},

	"pascal":     {1, Dimension{Mass: 1, Length: -1, Time: -2}},
	"bar":        {1e5, Dimension{Mass: 1, Length: -1, Time: -2}},
	"atmosphere": {101325, Dimension{Mass: 1, Length: -1, Time: -2}},

	"newton":  {1, Dimension{Mass: 1, Length: 1, Time: -2}},
	"joule":   {1, Dimension{Mass: 1, Length: 2, Time: -2}},
	"calorie": {4.184, Dimension{Mass: 1, Length: 2, Time: -2}},
	"watt":    {1, Dimension{Mass: 1, Length: 2, Time: -3}},
}

var prefixes = map[string]float64{
	"nano":  1e-9,
	"micro": 1e-6,
	"milli": 1e-3,
	"centi": 1e-2,
	"deci":  1e-1,
	"deca":  1e1,
	"hecto": 1e2,
	"kilo":  1e3,
	"mega":  1e6,
	"giga":  1e9,
}

// resolveName looks up a unit name, trying the vocabulary first and then an
// SI prefix followed by a vocabulary name.
func resolveName(name string) (namedUnit, bool) {
	if nu, ok := vocabulary[name]; ok {
		return nu, true
	}

	for prefix, scale := range prefixes {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		if nu, found := vocabulary[rest]; found {
			return namedUnit{factor: nu.factor * scale, dim: nu.dim}, true
		}
	}

	return namedUnit{}, false
}

// term is one named unit raised to an integer exponent within a parsed
// expression.
type term struct {
	name string
	exp  int
}

// Unit is a parsed unit expression: an ordered product of named-unit terms
// with a combined conversion factor and dimension vector.
//
// Unit values must come from Parse, MustParse or the predefined variables;
// the zero value is not a valid unit.
type Unit struct {
	terms  []term
	factor float64
	dim    Dimension
}

// Predefined units for the property kinds this library ships with.
var (
	Dimensionless          = MustParse("dimensionless")
	Kelvin                 = MustParse("kelvin")
	Pascal                 = MustParse("pascal")
	Kilopascal             = MustParse("kilopascal")
	Atmosphere             = MustParse("atmosphere")
	KilogramPerCubicMeter  = MustParse("kilogram / meter ** 3")
	GramPerCubicCentimeter = MustParse("gram / centimeter ** 3")
	JoulePerMole           = MustParse("joule / mole")
	KilojoulePerMole       = MustParse("kilojoule / mole")
	CubicCentimeterPerMole = MustParse("centimeter ** 3 / mole")
)

// Parse parses a unit expression against the vocabulary.
//
// The grammar is a whitespace-separated, left-associative product:
//
//	expr = operand { ("*" | "/") operand }
//	operand = name [ "**" integer ] | "1"
//
// matching serialized forms such as "kilogram / meter ** 3". Unknown names,
// misplaced operators and malformed exponents fail with errs.ErrInvalidUnit.
func Parse(s string) (Unit, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Unit{}, fmt.Errorf("%w: empty unit expression", errs.ErrInvalidUnit)
	}

	u := Unit{factor: 1}
	sign := 1
	expectOperand := true

	for i := 0; i < len(fields); i++ {
		token := fields[i]

		switch token {
		case "*", "/":
			if expectOperand {
				return Unit{}, fmt.Errorf("%w: misplaced %q in %q", errs.ErrInvalidUnit, token, s)
			}
			sign = 1
			if token == "/" {
				sign = -1
			}
			expectOperand = true

		default:
			if !expectOperand {
				return Unit{}, fmt.Errorf("%w: missing operator before %q in %q", errs.ErrInvalidUnit, token, s)
			}

			exp := 1
			if i+2 < len(fields) && fields[i+1] == "**" {
				parsed, err := strconv.Atoi(fields[i+2])
				if err != nil || parsed == 0 {
					return Unit{}, fmt.Errorf("%w: bad exponent %q in %q", errs.ErrInvalidUnit, fields[i+2], s)
				}
				exp = parsed
				i += 2
			}
			exp *= sign

			if token == "1" {
				// Bare numerator placeholder, as in "1 / second".
				expectOperand = false
				continue
			}

			nu, ok := resolveName(token)
			if !ok {
				return Unit{}, fmt.Errorf("%w: unknown unit %q in %q", errs.ErrInvalidUnit, token, s)
			}

			u.appendTerm(token, exp, nu)
			expectOperand = false
		}
	}

	if expectOperand {
		return Unit{}, fmt.Errorf("%w: trailing operator in %q", errs.ErrInvalidUnit, s)
	}

	return u, nil
}

// MustParse parses a unit expression and panics on failure. Intended for
// package-level unit variables and tests.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return u
}

// appendTerm folds one named unit into the expression, merging repeated
// names so "meter * meter" and "meter ** 2" are the same unit.
func (u *Unit) appendTerm(name string, exp int, nu namedUnit) {
	u.factor *= math.Pow(nu.factor, float64(exp))
	u.dim = u.dim.add(nu.dim.scale(exp))

	for i := range u.terms {
		if u.terms[i].name != name {
			continue
		}
		u.terms[i].exp += exp
		if u.terms[i].exp == 0 {
			u.terms = append(u.terms[:i], u.terms[i+1:]...)
		}

		return
	}

	u.terms = append(u.terms, term{name: name, exp: exp})
}

// Dimension returns the base-dimension vector of the unit.
func (u Unit) Dimension() Dimension {
	return u.dim
}

// Compatible reports whether two units share a dimension vector and can be
// converted into one another.
func (u Unit) Compatible(o Unit) bool {
	return u.dim == o.dim
}

// IsValid reports whether the unit came from a successful parse. The zero
// Unit value is invalid.
func (u Unit) IsValid() bool {
	return u.factor != 0
}

// String renders the unit in canonical form: numerator terms joined by
// " * ", denominator terms each introduced by " / ", exponents rendered as
// " ** n". This is the form persisted in serialized quantities, so it must
// stay stable.
func (u Unit) String() string {
	if len(u.terms) == 0 {
		return "dimensionless"
	}

	var b strings.Builder
	numerators := 0
	for _, t := range u.terms {
		if t.exp <= 0 {
			continue
		}
		if numerators > 0 {
			b.WriteString(" * ")
		}
		writeTerm(&b, t.name, t.exp)
		numerators++
	}
	if numerators == 0 {
		b.WriteString("1")
	}
	for _, t := range u.terms {
		if t.exp >= 0 {
			continue
		}
		b.WriteString(" / ")
		writeTerm(&b, t.name, -t.exp)
	}

	return b.String()
}

func writeTerm(b *strings.Builder, name string, exp int) {
	b.WriteString(name)
	if exp != 1 {
		b.WriteString(" ** ")
		b.WriteString(strconv.Itoa(exp))
	}
}
