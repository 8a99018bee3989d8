// Package domain contains the core model for reboot: instructions, reports,
// configuration and error classification.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML
// parsing, the filesystem or the box geometry. Infra/adapters map into/from these
// types.
package domain
