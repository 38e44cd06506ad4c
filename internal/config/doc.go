// Package config loads domsl.yaml and locates the enclosing Go module.
//
// A configuration file is optional. When present it lives in the module
// root:
//
//	version: "1"
//	runtime: domsl/dom
//	extension: .gox
//	content_model: warn
//	global_attributes: [hx-get, hx-target]
package config
