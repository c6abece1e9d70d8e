package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "localhost:9999", "-x", "nope"},
			allowed: []string{"-a"},
			want:    []string{"-a", "localhost:9999"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-other=1"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value before another flag",
			args:    []string{"-v", "-a", "addr"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", "addr"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"test", "-c", "settings.json"}
	assert.Equal(t, "settings.json", JsonConfigFlags())

	os.Args = []string{"test"}
	assert.Equal(t, "", JsonConfigFlags())
}
