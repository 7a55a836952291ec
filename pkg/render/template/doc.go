// Package template defines the engine-agnostic template seam used to render
// submission reports. The pongo2 implementation lives in the gotemplate
// subpackage.
package template
