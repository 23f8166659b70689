// Package build runs the booknav pipeline: site metadata, content discovery,
// navigation, verification and the per-page models handed to the site
// renderer.
//
// Output is written to a sibling staging directory and promoted only when
// every file has been written, so a failed build leaves the previous output
// untouched and produces nothing new.
package build
