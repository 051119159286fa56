package templates

import (
	qt "github.com/valyala/quicktemplate"
)

// TypedGen renders the typed package: arity-specialized Computed and Effect
// wrappers over explicit dependency handles.
func TypedGen(arity int) string {
	bb := qt.AcquireByteBuffer()
	defer qt.ReleaseByteBuffer(bb)
	qw := qt.AcquireWriter(bb)
	defer qt.ReleaseWriter(qw)
	w := qw.N()

	w.S("// Code generated by cmd/codegen. DO NOT EDIT.\n")
	w.S("\n")
	w.S("package typed\n")
	w.S("\n")
	w.S("import (\n")
	w.S("\tspark \"github.com/reactivekit/spark\"\n")
	w.S(")\n")
	w.S("\n")
	w.S("// Dep is any readable reactive handle; writeable and computed signals both\n")
	w.S("// qualify.\n")
	w.S("type Dep[T any] interface {\n")
	w.S("\tValue() T\n")
	w.S("}\n")

	for i := 1; i <= arity; i++ {
		w.S("\n")
		w.S("func Computed")
		w.D(i)
		w.S("[")
		w.S(prefixedStrings("T", i))
		w.S(", O any](rt *spark.Runtime, ")
		w.S(depParams(i))
		w.S(", fn func(")
		w.S(prefixedStrings("T", i))
		w.S(") O) *spark.ReadonlySignal[O] {\n")
		w.S("\treturn spark.Computed(rt, func() O {\n")
		w.S("\t\treturn fn(")
		w.S(valueCalls(i))
		w.S(")\n")
		w.S("\t})\n")
		w.S("}\n")
	}

	for i := 1; i <= arity; i++ {
		w.S("\n")
		w.S("func Effect")
		w.D(i)
		w.S("[")
		w.S(prefixedStrings("T", i))
		w.S(" any](rt *spark.Runtime, ")
		w.S(depParams(i))
		w.S(", fn func(")
		w.S(prefixedStrings("T", i))
		w.S(")) (stop func()) {\n")
		w.S("\treturn spark.Effect(rt, func() spark.CleanupFunc {\n")
		w.S("\t\tfn(")
		w.S(valueCalls(i))
		w.S(")\n")
		w.S("\t\treturn nil\n")
		w.S("\t})\n")
		w.S("}\n")
	}

	return string(bb.B)
}
