package search

import (
	"testing"

	"LearnScout/be/internal/content"
)

func TestEnhance(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		level content.Level
		want  string
	}{
		{
			name:  "beginner python",
			topic: "python",
			level: content.Beginner,
			want:  "python basics fundamentals introduction tutorial getting started",
		},
		{
			name:  "intermediate react",
			topic: "react",
			level: content.Intermediate,
			want:  "react practical examples implementation hands-on intermediate",
		},
		{
			name:  "advanced kubernetes",
			topic: "kubernetes",
			level: content.Advanced,
			want:  "kubernetes advanced expert professional in-depth comprehensive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Enhance(tt.topic, tt.level); got != tt.want {
				t.Errorf("Enhance(%q, %s) = %q, want %q", tt.topic, tt.level, got, tt.want)
			}
		})
	}
}

func TestParseLevelDefaultsToBeginner(t *testing.T) {
	tests := []struct {
		in   string
		want content.Level
	}{
		{"beginner", content.Beginner},
		{"Intermediate", content.Intermediate},
		{"ADVANCED", content.Advanced},
		{"", content.Beginner},
		{"expert", content.Beginner},
	}
	for _, tt := range tests {
		if got := content.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
