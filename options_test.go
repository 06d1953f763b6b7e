package resumepdf

import "testing"

func TestBrowserPath_NoDownload(t *testing.T) {
	tests := []struct {
		name string
		opts []ConverterOption
		want string
	}{
		{"default", nil, ""},
		{"explicit", []ConverterOption{WithChromePath("/opt/chrome/chrome")}, "/opt/chrome/chrome"},
		{"explicit wins over download", []ConverterOption{WithChromePath("/opt/chrome/chrome"), WithAutoDownload()}, "/opt/chrome/chrome"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConverterConfig()
			for _, o := range tt.opts {
				o(&cfg)
			}
			got, err := browserPath(cfg)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("browserPath = %q, want %q", got, tt.want)
			}
		})
	}
}
