// Package npm talks to the npm ecosystem: it resolves the latest published
// version of a package from a registry and runs the project's package
// manager to install the dependencies written to package.json.
package npm
