// Package config defines the format-agnostic description of a merge job and
// the Loader interface that concrete job-file formats implement.
//
// The HCL implementation lives in the hcl package.
package config
