/*
Package domain contains the core domain models for the canopy engine.

It defines the wire messages of the A2UI v0.8 protocol (beginRendering,
surfaceUpdate, dataModelUpdate, deleteSurface), the Surface record each
message stream materializes into, and the Component records a surface is
composed of. This package is kept pure and free of I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Message: one protocol envelope carrying exactly one action.
  - Surface: an independently addressable UI region (components + data model).
  - Component: one node of a surface's UI description, referencing children
    by id rather than by ownership.
  - Value: a bound property value, either a literal or a data-model path
    reference (resolved by pkg/datamodel).
*/
package domain
