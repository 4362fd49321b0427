package catalog

import "testing"

func TestIsSupported(t *testing.T) {
	if !IsSupported("iPhone 15 Pro") {
		t.Error("iPhone 15 Pro should be supported")
	}
	if IsSupported("Galaxy S24") {
		t.Error("unknown models must be rejected")
	}
}

func TestImageURLPresentForEverySupportedModel(t *testing.T) {
	for _, model := range Models() {
		if ImageURL(model) == "" {
			t.Errorf("model %q has no image", model)
		}
	}
}

func TestWeeklyOnlyModels(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"iPhone XR", true},
		{"iPhone 11 Pro Max", true},
		{"iPhone 12", false},
		{"iPhone 17", false},
	}
	for _, tt := range tests {
		if got := IsWeeklyOnly(tt.model); got != tt.want {
			t.Errorf("IsWeeklyOnly(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestDownPaymentRate(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"iPhone XR", "0.6"},
		{"iPhone 17 Pro Max", "0.6"},
		{"iPhone 13", "0.4"},
		{"iPhone 16 Pro", "0.4"},
	}
	for _, tt := range tests {
		if got := DownPaymentRate(tt.model); got.String() != tt.want {
			t.Errorf("DownPaymentRate(%q) = %s, want %s", tt.model, got, tt.want)
		}
	}
}
