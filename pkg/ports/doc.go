// Package ports defines the interfaces (ports) between the canopy core and
// its adapters, plus a reusable contract test suite that adapter
// implementations run to prove compliance.
package ports
