// Package jsondoc holds the JSON document tree shared by every generated
// configuration file, along with the right-biased deep merge used to layer
// plugin overlays and to extend files that already exist on disk.
package jsondoc
