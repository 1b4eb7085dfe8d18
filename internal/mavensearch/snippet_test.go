package mavensearch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	want := `<dependency>
    <groupId>org.simplejavamail</groupId>
    <artifactId>simple-java-mail</artifactId>
    <version>8.12.2</version>
</dependency>`
	assert.Equal(t, want, Snippet(DefaultGroupID, DefaultArtifactID, "8.12.2"))
	assert.Contains(t, Snippet(DefaultGroupID, DefaultArtifactID, ""), "<version>...</version>")
}

func TestUpdateAvailable(t *testing.T) {
	tests := []struct {
		current, latest string
		want            bool
	}{
		{"8.0.0", "8.12.2", true},
		{"8.12.2", "8.12.2", false},
		{"v8.12.2", "8.1.0", false},
		{"8.12", "8.12.1", true},
		{"8.12.2-SNAPSHOT", "8.12.2", true},
		{"", "8.12.2", false},
		{"8.0.0", "latest", false},
	}
	for _, tt := range tests {
		t.Run(tt.current+"->"+tt.latest, func(t *testing.T) {
			assert.Equal(t, tt.want, UpdateAvailable(tt.current, tt.latest))
		})
	}
}

func TestDisplay_LastApplyWins(t *testing.T) {
	d := NewDisplay(DefaultGroupID, DefaultArtifactID)
	assert.Contains(t, d.Text(), Placeholder)
	assert.Empty(t, d.Version())

	d.Apply(DefaultGroupID, DefaultArtifactID, "8.0.0")
	d.Apply(DefaultGroupID, DefaultArtifactID, "7.9.0")
	assert.Equal(t, "7.9.0", d.Version())
	assert.Contains(t, d.Text(), "<version>7.9.0</version>")
	assert.Equal(t, 2, d.Applied())
}

func TestDisplay_Concurrent(t *testing.T) {
	d := NewDisplay(DefaultGroupID, DefaultArtifactID)
	var wg sync.WaitGroup
	for _, v := range []string{"1.0.0", "2.0.0", "3.0.0", "4.0.0"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Apply(DefaultGroupID, DefaultArtifactID, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, d.Applied())
	assert.Contains(t, []string{"1.0.0", "2.0.0", "3.0.0", "4.0.0"}, d.Version())
}
