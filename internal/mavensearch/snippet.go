package mavensearch

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

// Placeholder stands in for the version until a lookup completes.
const Placeholder = "..."

// Snippet renders the Maven dependency declaration. An empty version is
// shown as Placeholder.
func Snippet(groupID, artifactID, version string) string {
	if version == "" {
		version = Placeholder
	}
	return fmt.Sprintf(`<dependency>
    <groupId>%s</groupId>
    <artifactId>%s</artifactId>
    <version>%s</version>
</dependency>`, groupID, artifactID, version)
}

// UpdateAvailable reports whether latest is a newer release than current.
// Versions that are not valid semver never report an update.
func UpdateAvailable(current, latest string) bool {
	c, l := canonical(current), canonical(latest)
	if !semver.IsValid(c) || !semver.IsValid(l) {
		return false
	}
	return semver.Compare(l, c) > 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Display holds the snippet currently shown to the user. Concurrent lookups
// may finish in any order; whichever response is applied last is shown.
type Display struct {
	mu      sync.Mutex
	text    string
	version string
	applied int
}

// NewDisplay returns a Display showing the placeholder snippet.
func NewDisplay(groupID, artifactID string) *Display {
	return &Display{text: Snippet(groupID, artifactID, "")}
}

// Apply replaces the shown snippet with one for version.
func (d *Display) Apply(groupID, artifactID, version string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = Snippet(groupID, artifactID, version)
	d.version = version
	d.applied++
}

// Text returns the shown snippet.
func (d *Display) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// Version returns the shown version, or "" while the placeholder is shown.
func (d *Display) Version() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Applied returns how many responses have been applied.
func (d *Display) Applied() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applied
}
