// Package schema holds the HCL decode targets for merge job files.
package schema

// JobFile is the top-level structure of a job file.
type JobFile struct {
	Merge *Merge `hcl:"merge,block"`
}

// Merge represents the `merge` block:
//
//	merge {
//	  output_dir = "out/sa_profile"
//	  target_cpu = "arm"
//	  fragments  = glob("fragments/*.xml")
//	}
type Merge struct {
	Fragments []string `hcl:"fragments,optional"`
	OutputDir string   `hcl:"output_dir,optional"`
	TargetCPU string   `hcl:"target_cpu,optional"`
}
