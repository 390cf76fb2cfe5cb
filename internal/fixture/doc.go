// Package fixture loads resolved compilation units from structural CUE
// descriptions. Parsing and name resolution of real Lumen source are
// external collaborators of the analyzer; the fixture loader stands in for
// both when driving it from tests or the CLI, building ast nodes and wiring
// bindings by name within the unit.
//
// A unit file looks like:
//
//	unit: {
//		name: "shapes"
//		decls: [
//			{kind: "var", name: "a", const: true, init: {kind: "int", value: 1}},
//			{kind: "var", name: "b", const: true, init: {kind: "ref", name: "a"}},
//		]
//	}
//
// References are resolved by declaration name ("a", "C.x", "C.named"); an
// unknown name yields an unbound reference, which is how fixtures express
// upstream resolution failures.
package fixture
