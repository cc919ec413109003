package platform

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func testInfo() *Info {
	return &Info{
		OS:       "linux",
		Arch:     "amd64",
		ArchRaw:  "amd64",
		Platform: "ubuntu",
		Family:   "debian",
		Version:  "22.04",
	}
}

func TestInjectPlatformTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, testInfo()); err != nil {
		t.Fatalf("inject platform table: %v", err)
	}

	tests := []struct {
		expr string
		want string
	}{
		{`platform.os`, "linux"},
		{`platform.arch`, "amd64"},
		{`platform.release_arch`, "x86_64"},
		{`tostring(platform.is_linux)`, "true"},
		{`tostring(platform.is_arm64)`, "false"},
		{`platform.distro.id`, "ubuntu"},
		{`platform.distro.family`, "debian"},
	}

	for _, tt := range tests {
		if err := L.DoString("result = " + tt.expr); err != nil {
			t.Fatalf("eval %s: %v", tt.expr, err)
		}
		if got := L.GetGlobal("result").String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
		}
	}
}

func TestPlatformTableIsReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, testInfo()); err != nil {
		t.Fatalf("inject platform table: %v", err)
	}

	if err := L.DoString(`platform.os = "windows"`); err == nil {
		t.Error("expected write to platform table to fail")
	}
}

func TestInjectPlatformTableNoDistro(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	info := &Info{OS: "darwin", Arch: "arm64", ArchRaw: "arm64"}
	if err := InjectPlatformTable(L, info); err != nil {
		t.Fatalf("inject platform table: %v", err)
	}

	if err := L.DoString(`result = tostring(platform.distro)`); err != nil {
		t.Fatalf("eval distro: %v", err)
	}
	if got := L.GetGlobal("result").String(); got != "nil" {
		t.Errorf("distro = %q, want nil", got)
	}
}
