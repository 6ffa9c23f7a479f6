package tenant

import "testing"

func TestSubdomainFromHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"acme.feedback.example.com", "acme"},
		{"acme.feedback.example.com:8080", "acme"},
		{"ACME.Feedback.Example.com", "acme"},
		{"acme.feedback.example.com.", "acme"},
		{"example.com", ""},
		{"feedback.example.com", "feedback"},
		{"localhost", ""},
		{"localhost:3000", ""},
		{"127.0.0.1", ""},
		{"127.0.0.1:8080", ""},
		{"[::1]:8080", ""},
		{"10.0.0.5", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SubdomainFromHost(tt.host); got != tt.want {
			t.Errorf("SubdomainFromHost(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestIsLocalHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"localhost:3000", true},
		{"127.0.0.1:8080", true},
		{"acme.feedback.example.com", false},
		{"10.0.0.5", false},
	}
	for _, tt := range tests {
		if got := isLocalHost(tt.host); got != tt.want {
			t.Errorf("isLocalHost(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}
