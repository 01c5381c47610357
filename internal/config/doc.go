// Package config provides configuration loading, merging, and validation for
// the service.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources fill only fields the earlier ones left zero):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The resulting [StructuredConfig] is immutable after [GetStructuredConfig]
// returns; components receive the sections they need by value at construction
// time and never consult ambient state afterwards.
package config
