package platform

import "testing"

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		name    string
		arch    string
		want    string
		wantErr bool
	}{
		{name: "amd64", arch: "amd64", want: "amd64"},
		{name: "x86_64_alias", arch: "x86_64", want: "amd64"},
		{name: "arm64", arch: "arm64", want: "arm64"},
		{name: "aarch64_alias", arch: "aarch64", want: "arm64"},
		{name: "unsupported_386", arch: "386", wantErr: true},
		{name: "unsupported_riscv", arch: "riscv64", wantErr: true},
		{name: "empty", arch: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeArch(tt.arch)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q but got none", tt.arch)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("normalizeArch(%q) = %q, want %q", tt.arch, got, tt.want)
			}
		})
	}
}

func TestNormalizePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ubuntu", "ubuntu"},
		{"  Arch \n", "arch"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizePlatform(tt.in); got != tt.want {
			t.Errorf("normalizePlatform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
