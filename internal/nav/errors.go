package nav

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is matching across the typed errors below.
var (
	ErrDuplicateTarget  = errors.New("duplicate link target")
	ErrDuplicateLabel   = errors.New("duplicate sibling label")
	ErrUnsupportedDepth = errors.New("unsupported navigation depth")
	ErrInvalidEntry     = errors.New("invalid navigation entry")
)

// Location identifies a node in the declaration both by its label path from
// the root and by its configuration path (e.g. "sidebar[2].items[0]").
type Location struct {
	Labels     []string `json:"labels"`
	ConfigPath string   `json:"config_path"`
}

func (l Location) String() string {
	if len(l.Labels) == 0 {
		return l.ConfigPath
	}
	return fmt.Sprintf("%s (%s)", strings.Join(l.Labels, " > "), l.ConfigPath)
}

func (l Location) child(label, configPath string) Location {
	labels := make([]string, len(l.Labels), len(l.Labels)+1)
	copy(labels, l.Labels)
	return Location{Labels: append(labels, label), ConfigPath: configPath}
}

// DuplicateTargetError reports two links resolving to the same content identifier.
type DuplicateTargetError struct {
	Target string
	First  Location
	Second Location
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("duplicate link target %q: %s and %s", e.Target, e.First, e.Second)
}

func (e *DuplicateTargetError) Is(target error) bool { return target == ErrDuplicateTarget }

// DuplicateLabelError reports two siblings sharing a label within the same parent.
type DuplicateLabelError struct {
	Parent Location
	Label  string
	First  string // config path of the first sibling
	Second string // config path of the colliding sibling
}

func (e *DuplicateLabelError) Error() string {
	parent := e.Parent.String()
	if parent == "" {
		parent = "sidebar"
	}
	return fmt.Sprintf("duplicate label %q under %s: %s and %s", e.Label, parent, e.First, e.Second)
}

func (e *DuplicateLabelError) Is(target error) bool { return target == ErrDuplicateLabel }

// UnsupportedDepthError reports a group nested deeper than the renderer supports.
type UnsupportedDepthError struct {
	At       Location
	Depth    int
	MaxDepth int
}

func (e *UnsupportedDepthError) Error() string {
	return fmt.Sprintf("group %s is nested %d levels deep (max %d); set navigation.depthPolicy=flatten to promote it",
		e.At, e.Depth, e.MaxDepth)
}

func (e *UnsupportedDepthError) Is(target error) bool { return target == ErrUnsupportedDepth }

// InvalidEntryError reports a malformed declaration entry.
type InvalidEntryError struct {
	At     Location
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid sidebar entry %s: %s", e.At, e.Reason)
}

func (e *InvalidEntryError) Is(target error) bool { return target == ErrInvalidEntry }
