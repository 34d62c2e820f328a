package resourcelimits

// Resource is one entry of the registry: a symbolic name and the platform
// resource id passed to getrlimit/setrlimit.
type Resource struct {
	Name  string
	Unit  string
	Human string
	id    int
}

// registry is fixed at build time. Each group only has entries on platforms
// that define the corresponding RLIMIT_* constants.
var registry = concatResources(baseResources, processResources, addressSpaceResources)

func concatResources(groups ...[]Resource) []Resource {
	var all []Resource
	for _, group := range groups {
		all = append(all, group...)
	}
	return all
}

// Lookup resolves a resource name. Names are case-sensitive and have no aliases.
func Lookup(name string) (Resource, bool) {
	for _, r := range registry {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}

// Names returns the resource names known on this platform, in registry order
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.Name)
	}
	return names
}

// Supported reports whether this platform has any resource limits at all
func Supported() bool {
	return len(registry) > 0
}
