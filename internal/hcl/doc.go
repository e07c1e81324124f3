// Package hcl loads feature manifests written in HCL and translates them
// into the format-agnostic config model.
//
// A manifest declares feature nodes, their dependencies, and the conditions
// gating them:
//
//	feature "speech" {
//	  description = "On-device speech synthesis"
//	  requires    = ["audio"]
//
//	  condition "synthesizer_available" {
//	    probe = "CheckSynthesizerBackend"
//	  }
//	}
//
// Conditions reference Go probe handlers by name; the provider registry
// validates that every referenced probe is actually compiled in.
package hcl
