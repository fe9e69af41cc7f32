package autodiff

import (
	"fmt"

	"github.com/hupe1980/gradir/indexset"
)

// Config identifies one requested or realized derivative computation:
// which parameters and results are differentiated, under which derivative
// generic constraint.
type Config struct {
	Parameters *indexset.Set
	Results    *indexset.Set
	Constraint Constraint // may be nil
}

// Equal reports whether two configs identify the same request. Both index
// sets must be exactly equal (capacity and membership); constraint equality
// is delegated to the constraint representation.
func (c Config) Equal(other Config) bool {
	return c.Parameters.Equal(other.Parameters) &&
		c.Results.Equal(other.Results) &&
		constraintsEqual(c.Constraint, other.Constraint)
}

// Key returns a canonical string form of the config, suitable for map keys.
func (c Config) Key() string {
	constraint := ""
	if c.Constraint != nil {
		constraint = c.Constraint.String()
	}
	return fmt.Sprintf("p=%s r=%s c=%s", c.Parameters, c.Results, constraint)
}

func (c Config) String() string {
	if c.Constraint == nil {
		return fmt.Sprintf("(parameters %s, results %s)", c.Parameters, c.Results)
	}
	return fmt.Sprintf("(parameters %s, results %s, where %s)", c.Parameters, c.Results, c.Constraint)
}
