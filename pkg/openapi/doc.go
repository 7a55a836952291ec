// Package openapi describes the form's rules as an OpenAPI 3 object schema so
// other renderers and servers can consume the same definition. Field rules map
// to standard keywords; refinements travel in the x-formkit-refinements
// extension.
package openapi
