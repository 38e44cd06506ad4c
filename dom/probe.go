package dom

// Probe and ProbeComponent stand in for markup invocations while the
// generator type-checks a package. The generator rewrites every invocation
// into a call to one of them, with id numbering the invocations of a file,
// reads the types of the values and then replaces the call with real
// construction code. Generated code never calls them, and calling them from
// a .gox file confuses the generator.
func Probe[T any](doc any, id int, values ...any) T {
	var zero T
	return zero
}

// ProbeComponent is Probe for invocations whose root is a component. root is
// the component's Render call, so the invocation has the component's result
// type.
func ProbeComponent[N any](root N, doc any, id int, values ...any) N {
	return root
}
