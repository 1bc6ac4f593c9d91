// Package markdown provides a sub-component that renders the text placed
// inside its tag as Markdown.
//
//	<markdown class="intro">
//	  # Welcome
//	  Some *emphasis*.
//	</markdown>
//
// The common indentation of the text is removed before conversion, so the
// Markdown can be indented along with the surrounding template.
package markdown
