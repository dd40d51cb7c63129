package render

import (
	"slices"
	"testing"
)

func TestWrapTextWithWideRunes(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "pure wide runes",
			text:  "你好世界",
			width: 4,
			want:  []string{"你好", "世界"},
		},
		{
			name:  "wide rune does not straddle the edge",
			text:  "a你好",
			width: 4,
			want:  []string{"a你", "好"},
		},
		{
			name:  "indentation survives",
			text:  "1) 1) \"a\"\n   2) \"b\"",
			width: 80,
			want:  []string{"1) 1) \"a\"", "   2) \"b\""},
		},
		{
			name:  "hard break keeps spaces",
			text:  "ab cd ef",
			width: 3,
			want:  []string{"ab ", "cd ", "ef"},
		},
		{
			name:  "empty lines kept",
			text:  "a\n\nb",
			width: 0,
			want:  []string{"a", "", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("wrapText(%q,%d)=%q want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
