// Package builder materialises parsed markup into dom elements.
//
// A Context collects the elements registered through id and for attributes
// and resolves on* attributes into event listeners. Tags listed in Uses are
// handed to their Constructor instead of becoming plain elements.
package builder
