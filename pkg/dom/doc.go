// Package dom is a small in-memory document used as the build target for
// parsed templates. It covers what the builder needs: element and text
// creation, attributes, child lists, event listeners and an owner association
// between an element and the components built around it.
package dom
