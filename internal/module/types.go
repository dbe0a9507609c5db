package module

// Packaging classifies a module by the <packaging> value of its descriptor.
type Packaging int

const (
	// PackagingOther covers any packaging value pdemeta has no metadata for.
	PackagingOther Packaging = iota
	// PackagingPlugin is a plain OSGi bundle ("eclipse-plugin").
	PackagingPlugin
	// PackagingTestPlugin is a test fragment or bundle ("eclipse-test-plugin").
	PackagingTestPlugin
	// PackagingPOM is an aggregator or parent module ("pom").
	PackagingPOM
	// PackagingRepository is a p2 repository module ("eclipse-repository").
	PackagingRepository
)

var packagingNames = map[string]Packaging{
	"eclipse-plugin":      PackagingPlugin,
	"eclipse-test-plugin": PackagingTestPlugin,
	"pom":                 PackagingPOM,
	"eclipse-repository":  PackagingRepository,
}

// ParsePackaging maps a raw descriptor value onto the closed tag set.
// Unknown values map to PackagingOther.
func ParsePackaging(raw string) Packaging {
	if p, ok := packagingNames[raw]; ok {
		return p
	}
	return PackagingOther
}

// String returns the descriptor value for the packaging kind.
func (p Packaging) String() string {
	switch p {
	case PackagingPlugin:
		return "eclipse-plugin"
	case PackagingTestPlugin:
		return "eclipse-test-plugin"
	case PackagingPOM:
		return "pom"
	case PackagingRepository:
		return "eclipse-repository"
	default:
		return "other"
	}
}

// IsPluginLike reports whether modules of this kind compile sources and
// therefore need a classpath document.
func (p Packaging) IsPluginLike() bool {
	return p == PackagingPlugin || p == PackagingTestPlugin
}

// IsTest reports whether source roots are test scoped.
func (p Packaging) IsTest() bool {
	return p == PackagingTestPlugin
}

// IsSupported reports whether a project descriptor is emitted for the kind.
func (p Packaging) IsSupported() bool {
	return p != PackagingOther
}
