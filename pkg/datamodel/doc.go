/*
Package datamodel implements the per-surface, path-addressed data tree used
for late-bound property resolution.

Displayed values may be literals or {"path": "..."} references; Resolve
applies the fixed resolution order (bare literal, tagged literal, path
lookup, caller default) and a locale-independent display format.
*/
package datamodel
