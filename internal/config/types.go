// Package config resolves the installer's run configuration: the target
// plugin directory and the optional overrides from the user's Lua config
// file at ~/.config/squelch-installer/config.lua.
//
// Resolution order for the install directory:
//  1. the SQUELCH_INSTALL_DIR environment variable
//  2. install_dir in the Lua config
//  3. an interactive prompt (never in quiet mode)
//
// The Lua config is declarative and runs in a sandboxed VM with the
// read-only platform table injected, so users can write things like:
//
//	installer = {
//	    install_dir = platform.is_arm64 and "~/.vst3-arm" or "~/.vst3",
//	}
package config

// Settings holds the optional overrides read from the Lua config file.
// Zero values mean "not set".
type Settings struct {
	// InstallDir is the target plugin directory.
	InstallDir string
	// Repo overrides the GitHub repository to fetch from ("owner/name").
	Repo string
	// AssetPattern overrides the regular expression used to pick the
	// Linux release archive.
	AssetPattern string
}

// DefaultRepo is the upstream project whose releases are installed.
const DefaultRepo = "tessellate-audio/squelch"

// EnvInstallDir is the environment variable supplying the target directory.
const EnvInstallDir = "SQUELCH_INSTALL_DIR"
