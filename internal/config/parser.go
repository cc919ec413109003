package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	lua "github.com/yuin/gopher-lua"

	"github.com/tessellate-audio/squelch-installer/internal/platform"
)

// Parser parses the optional Lua config file with platform detection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given platform detector.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ConfigPath returns the path of the user's Lua config file.
func ConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "squelch-installer", "config.lua"), nil
}

// LoadFile parses the Lua config at path. A missing file is not an error
// and yields empty settings; a file that exists but does not parse is a
// configuration error the user has to fix.
func (p *Parser) LoadFile(ctx context.Context, path string) (*Settings, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	settings, err := p.ParseString(ctx, string(code))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

// ParseString parses a Lua config from a string.
// This is also the entry point used by tests.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Settings, error) {
	L := newSandboxedVM()
	defer L.Close()

	// Detect platform and inject the read-only platform table
	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractSettings(L)
}

// ParseError represents a config parsing error with a friendly message.
type ParseError struct {
	Message string // user-friendly message
	Detail  string // technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractSettings extracts the settings from a Lua state.
// It expects an optional global "installer" table.
func extractSettings(L *lua.LState) (*Settings, error) {
	settings := &Settings{}

	installerTable := L.GetGlobal("installer")
	if installerTable.Type() == lua.LTNil {
		// Config file with no installer table: all defaults.
		return settings, nil
	}
	if installerTable.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "invalid 'installer' table",
			Detail:  fmt.Sprintf("expected table, got %s", installerTable.Type()),
		}
	}

	table := installerTable.(*lua.LTable)

	var err error
	if settings.InstallDir, err = stringField(table, "install_dir"); err != nil {
		return nil, err
	}
	if settings.Repo, err = stringField(table, "repo"); err != nil {
		return nil, err
	}
	if settings.AssetPattern, err = stringField(table, "asset_pattern"); err != nil {
		return nil, err
	}

	return settings, nil
}

// stringField reads an optional string field from a Lua table.
func stringField(table *lua.LTable, name string) (string, error) {
	value := table.RawGetString(name)
	switch value.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return string(value.(lua.LString)), nil
	default:
		return "", &ParseError{
			Message: fmt.Sprintf("invalid '%s' field", name),
			Detail:  fmt.Sprintf("expected string, got %s", value.Type()),
		}
	}
}
