// Package manifest loads component definitions from JSON or YAML files.
//
// A manifest declares components by name:
//
//	components:
//	  card:
//	    template: |
//	      <article class="card"><slot-title id="title" /></article>
//	    uses: [slot-title]
//	  slot-title:
//	    templateFile: title.html
//
// templateFile paths are resolved relative to the manifest that names them.
// Entries in uses may name other components or constructors registered with
// WithConstructors.
package manifest
