// Package config loads experiment settings and turns them into timeline requests.
//
// Settings files are YAML documents with three sections (design, stimuli and
// various). Each section is decoded into a typed struct; keys the structs do
// not know are reported, required keys that are missing are rejected.
package config
