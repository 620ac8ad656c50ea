// Package templates embeds the base configuration templates for each concern
// (ESLint, Stylelint, Prettier) and the ESLint plugin overlays. Overlays are
// reached only through a statically built Registry, so an unknown plugin is
// reported when the selection is validated rather than when a file is opened.
package templates
