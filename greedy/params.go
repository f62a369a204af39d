package greedy

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tuneinsight/romspline/spline"
)

const (
	// DefaultDegree is the default degree of the reduced-order splines.
	DefaultDegree = 5
	// DefaultTolerance is the default maximum pointwise error.
	DefaultTolerance = 1e-6
)

// ParametersLiteral is a literal representation of the parameters of a reduction. It has public
// fields and is used to express unchecked user-defined parameters, for example decoded from a
// configuration file. The [NewParametersFromLiteral] function is used to generate the actual
// checked parameters from the literal representation.
//
// If Relative is true, the tolerance is relative to max|y| of the reduced data.
// If Seeds is not nil, it replaces the automatic seeding of the knots and its order is the
// selection order of the seed knots.
type ParametersLiteral struct {
	Degree    int     `json:"degree" yaml:"degree"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	Relative  bool    `json:"relative" yaml:"relative"`
	Seeds     []int   `json:"seeds,omitempty" yaml:"seeds,omitempty"`
	Verbose   bool    `json:"verbose" yaml:"verbose"`
}

// DefaultParametersLiteral returns the [ParametersLiteral] with the default degree and tolerance.
func DefaultParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Degree:    DefaultDegree,
		Tolerance: DefaultTolerance,
	}
}

// Parameters represents a checked parameter set of a reduction. Its fields are private and
// immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	degree    int
	tolerance float64
	relative  bool
	seeds     []int
	verbose   bool
}

// NewParametersFromLiteral instantiates a set of [Parameters] from a [ParametersLiteral] specification.
// It returns the empty parameters [Parameters]{} and a non-nil error if the specified parameters are invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (Parameters, error) {

	if pl.Degree < spline.MinDegree || pl.Degree > spline.MaxDegree {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: Degree=%d is not in [%d, %d]", ErrInvalidDegree, pl.Degree, spline.MinDegree, spline.MaxDegree)
	}

	if math.IsNaN(pl.Tolerance) || math.IsInf(pl.Tolerance, 0) || pl.Tolerance < 0 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: Tolerance=%v", ErrInvalidTolerance, pl.Tolerance)
	}

	var seeds []int
	if pl.Seeds != nil {
		seeds = append([]int{}, pl.Seeds...)
	}

	return Parameters{
		degree:    pl.Degree,
		tolerance: pl.Tolerance,
		relative:  pl.Relative,
		seeds:     seeds,
		verbose:   pl.Verbose,
	}, nil
}

// ParametersLiteral returns the [ParametersLiteral] of the target [Parameters].
func (p Parameters) ParametersLiteral() ParametersLiteral {
	var seeds []int
	if p.seeds != nil {
		seeds = append([]int{}, p.seeds...)
	}
	return ParametersLiteral{
		Degree:    p.degree,
		Tolerance: p.tolerance,
		Relative:  p.relative,
		Seeds:     seeds,
		Verbose:   p.verbose,
	}
}

// Degree returns the degree of the splines.
func (p Parameters) Degree() int {
	return p.degree
}

// Tolerance returns the tolerance as given, that is, before scaling by max|y| in relative mode.
func (p Parameters) Tolerance() float64 {
	return p.tolerance
}

// Relative returns true if the tolerance is relative to max|y|.
func (p Parameters) Relative() bool {
	return p.relative
}

// Seeds returns a copy of the user-supplied seed indices, or nil if the knots are seeded automatically.
func (p Parameters) Seeds() []int {
	if p.seeds == nil {
		return nil
	}
	return append([]int{}, p.seeds...)
}

// Verbose returns true if the reduction logs every iteration.
func (p Parameters) Verbose() bool {
	return p.verbose
}

// EffectiveTolerance returns the absolute tolerance of a reduction over d.
// In relative mode it is Tolerance * max|y| and the method returns
// [ErrDegenerateData] if every sample of d is zero.
func (p Parameters) EffectiveTolerance(d Domain) (float64, error) {

	if !p.relative {
		return p.tolerance, nil
	}

	m := d.MaxAbs()
	if m == 0 {
		return 0, fmt.Errorf("cannot EffectiveTolerance: %w: relative tolerance is undefined", ErrDegenerateData)
	}

	return p.tolerance * m, nil
}

// Equal returns true if the two parameter sets are equal. A nil and an empty seed list are not equal.
func (p Parameters) Equal(other *Parameters) bool {
	return p.degree == other.degree &&
		p.tolerance == other.tolerance &&
		p.relative == other.relative &&
		p.verbose == other.verbose &&
		(p.seeds == nil) == (other.seeds == nil) &&
		cmp.Equal(p.seeds, other.seeds, cmpopts.EquateEmpty())
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
