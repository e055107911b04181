package flagx

import (
	"reflect"
	"testing"
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
			args:    []string{"-n", "nats://localhost:4222", "-x", "junk"},
			allowed: []string{"-n"},
			want:    []string{"-n", "nats://localhost:4222"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=postgres://u:p@h/db", "--other=1"},
			allowed: []string{"-d"},
			want:    []string{"-d=postgres://u:p@h/db"},
		},
		{
			name:    "flag without value followed by another flag",
			args:    []string{"-t", "-d", "dsn"},
			allowed: []string{"-t", "-d"},
			want:    []string{"-t", "-d", "dsn"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1", "-b", "2"},
			allowed: []string{"-z"},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowed)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("FilterArgs(%v, %v) = %v, want %v", tc.args, tc.allowed, got, tc.want)
			}
		})
	}
}
