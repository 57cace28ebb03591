// Package schema holds the raw gohcl decode targets for class declaration
// files. The structs here mirror the HCL surface; the parsed, validated
// representation lives in the model package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Class represents a `class` block from a declaration file. Property blocks
// are left in Body and parsed with explicit schemas by the model package so
// that each annotation keyword can be diagnosed individually.
type Class struct {
	Name    string   `hcl:"name,label"`
	Extends string   `hcl:"extends,optional"`
	Body    hcl.Body `hcl:",remain"`
}

// FileRoot represents the top-level structure of a declaration file.
type FileRoot struct {
	Classes []*Class `hcl:"class,block"`
	Remain  hcl.Body `hcl:",remain"`
}
