package termfmt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyle(t *testing.T) {
	t.Cleanup(func() { SetEnabled(true) })

	tests := []struct {
		name    string
		enabled bool
		format  string
		style   Style
		want    string
	}{
		{name: "bold", enabled: true, format: "%s", style: Bold().V("doc"), want: "\x1b[1mdoc\x1b[0m"},
		{name: "width", enabled: true, format: "%-5s|", style: Bold().V("ab"), want: "\x1b[1mab   \x1b[0m|"},
		{name: "link", enabled: true, format: "%s", style: Linked("https://coda.io/d/x").V("Roadmap"),
			want: "\x1b]8;;https://coda.io/d/x\x1b\\Roadmap\x1b]8;;\x1b\\"},
		{name: "empty link", enabled: true, format: "%s", style: Linked("").V("Roadmap"), want: "Roadmap"},
		{name: "nested", enabled: true, format: "%s", style: Bold().Italic().V("x"), want: "\x1b[1m\x1b[3mx\x1b[0m\x1b[0m"},
		{name: "control characters dropped", enabled: true, format: "%s", style: Italic().V("a\x1b[31mb\n"),
			want: "\x1b[3ma[31mb\x1b[0m"},
		{name: "disabled", enabled: false, format: "%d", style: Bold().V(42), want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetEnabled(tt.enabled)
			assert.Equal(t, tt.want, fmt.Sprintf(tt.format, tt.style))
		})
	}
}
