// Package prefs collects the user's code-style answers. It owns the fixed
// question sequence, the immutable PreferenceSet produced from the answers,
// and the small style record persisted in the project for later runs.
package prefs
