package autodiff

import "fmt"

// Linkage controls the visibility of an emitted witness symbol.
type Linkage uint8

const (
	// LinkagePublic marks a witness defined and exported by this module.
	LinkagePublic Linkage = iota + 1
	// LinkagePublicExternal marks a forward-declared witness whose body is
	// linked from another module. Synthesized placeholders use this.
	LinkagePublicExternal
	// LinkageHidden marks a module-private witness.
	LinkageHidden
)

func (l Linkage) String() string {
	switch l {
	case LinkagePublic:
		return "public"
	case LinkagePublicExternal:
		return "public_external"
	case LinkageHidden:
		return "hidden"
	default:
		return fmt.Sprintf("linkage(%d)", uint8(l))
	}
}

// BodyKind discriminates the witness body variant.
type BodyKind uint8

const (
	// BodyDeclarationOnly is a placeholder asserting the derivative will be
	// linked externally; it carries no generated body.
	BodyDeclarationOnly BodyKind = iota
	// BodyDefined carries the generated derivative entry points.
	BodyDefined
)

func (k BodyKind) String() string {
	switch k {
	case BodyDeclarationOnly:
		return "declaration_only"
	case BodyDefined:
		return "defined"
	default:
		return fmt.Sprintf("body_kind(%d)", uint8(k))
	}
}

// Body is the tagged variant of a witness payload. JVP and VJP name the
// generated forward- and reverse-mode derivative symbols; they are set
// only when Kind is BodyDefined.
type Body struct {
	Kind BodyKind
	JVP  string
	VJP  string
}

// Key identifies a witness within a registry.
type Key struct {
	Function string
	Config   string
}

// Witness records that a derivative computation exists (or will exist)
// for a function under a specific configuration. Witnesses are immutable
// once registered.
type Witness struct {
	FunctionName string
	Config       Config
	Linkage      Linkage
	Body         Body
}

// NewDefinedWitness creates a witness backed by generated derivative
// entry points. Used by code generation upstream of resolution.
func NewDefinedWitness(linkage Linkage, functionName string, config Config, jvp, vjp string) *Witness {
	return &Witness{
		FunctionName: functionName,
		Config:       config,
		Linkage:      linkage,
		Body:         Body{Kind: BodyDefined, JVP: jvp, VJP: vjp},
	}
}

// NewDeclarationWitness creates a declaration-only placeholder witness.
func NewDeclarationWitness(linkage Linkage, functionName string, config Config) *Witness {
	return &Witness{
		FunctionName: functionName,
		Config:       config,
		Linkage:      linkage,
		Body:         Body{Kind: BodyDeclarationOnly},
	}
}

// IsDeclarationOnly reports whether the witness has no generated body.
func (w *Witness) IsDeclarationOnly() bool {
	return w.Body.Kind == BodyDeclarationOnly
}

// Key returns the registry key for the witness.
func (w *Witness) Key() Key {
	return Key{Function: w.FunctionName, Config: w.Config.Key()}
}

func (w *Witness) String() string {
	return fmt.Sprintf("witness %s %s [%s, %s]", w.FunctionName, w.Config, w.Linkage, w.Body.Kind)
}
