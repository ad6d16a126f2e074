package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "v1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "v1.2.3", Normalize(" v1.2.3 "))
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"v1.2.3", true},
		{"1.0.0", true},
		{"v1.2.0-rc.1", false},
		{"dev", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRelease(tt.version), tt.version)
	}
}

func TestGet(t *testing.T) {
	prev := Current
	t.Cleanup(func() { Current = prev })

	Current = "v2.0.1"
	assert.Equal(t, Info{Version: "v2.0.1", Release: true}, Get())

	Current = "dev"
	assert.Equal(t, Info{Version: "dev", Release: false}, Get())
}
