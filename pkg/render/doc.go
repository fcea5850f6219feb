/*
Package render defines the renderer contract shared by all output backends.

A renderer walks a surface's flat component map, resolves bound property
values through the surface's data model, and assembles backend-specific
output bottom-up. Children are referenced by id, never owned, so traversal
must be bounded (see MaxDepth) to stay correct when producers send cyclic
references.

Concrete backends live in the subpackages html and markdown.
*/
package render
