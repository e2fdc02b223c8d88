// Package config loads gedcheck configuration files.
//
// A configuration file is YAML. It is decoded strictly (unknown keys are
// errors), checked against the embedded CUE schema, and layered over
// Default, so a file only needs the keys it changes.
package config
