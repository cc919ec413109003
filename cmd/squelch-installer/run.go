package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tessellate-audio/squelch-installer/internal/config"
	"github.com/tessellate-audio/squelch-installer/internal/extract"
	"github.com/tessellate-audio/squelch-installer/internal/fetch"
	"github.com/tessellate-audio/squelch-installer/internal/install"
	"github.com/tessellate-audio/squelch-installer/internal/platform"
	"github.com/tessellate-audio/squelch-installer/internal/release"
	"github.com/tessellate-audio/squelch-installer/internal/ui"
	"github.com/tessellate-audio/squelch-installer/internal/workspace"
)

// run executes the whole install pipeline and returns the process exit
// code. Every fatal error funnels through here: a labeled error line plus
// one generic failure banner, so the user always gets a clear terminal
// signal.
func run(opts options) int {
	level := ui.Normal
	if opts.quiet {
		level = ui.Quiet
	}
	if opts.verbose {
		level = ui.Verbose
	}
	reporter := ui.NewReporter(level)

	var prompter ui.Prompter
	if !opts.quiet {
		prompter = ui.NewHuhPrompter()
	}

	if err := installLatest(context.Background(), reporter, prompter); err != nil {
		reporter.Errorf("%v", err)
		reporter.Failure("Squelch installation failed.")
		return 1
	}
	return 0
}

// installLatest is the linear pipeline: resolve configuration, locate the
// newest release asset, download, verify best-effort, extract, install.
func installLatest(ctx context.Context, reporter *ui.Reporter, prompter ui.Prompter) error {
	// Platform detection feeds arch-aware asset selection. Failure is
	// not fatal: discovery falls back to any Linux archive.
	archHint := ""
	detector := platform.NewDetector()
	info, err := detector.Detect(ctx)
	if err != nil {
		reporter.Warn("platform detection failed: %v", err)
		detector = nil
	} else {
		archHint = info.ReleaseArch()
		reporter.Detail("platform: %s/%s", info.OS, info.Arch)
	}

	// Optional Lua config. A missing file is fine; a broken one is a
	// configuration error the user has to fix.
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	settings, err := config.NewParser(detector).LoadFile(ctx, configPath)
	if err != nil {
		return err
	}

	// The target directory is settled before any network activity.
	resolver := &config.Resolver{Prompter: prompter, Reporter: reporter}
	targetDir, err := resolver.ResolveInstallDir(settings)
	if err != nil {
		return err
	}
	reporter.Info("installing into %s", targetDir)

	ws, err := workspace.New()
	if err != nil {
		return err
	}
	defer ws.Cleanup()
	removeOnSignal(ws)

	repo := settings.Repo
	if repo == "" {
		repo = config.DefaultRepo
	}
	pattern, err := release.CompilePattern(settings.AssetPattern)
	if err != nil {
		return err
	}

	reporter.Info("looking up the latest %s release", repo)
	url, err := release.Locate(ctx, reporter,
		&release.APIStrategy{Repo: repo, Pattern: pattern, ArchHint: archHint, UserAgent: userAgent()},
		&release.PageStrategy{Repo: repo, Pattern: pattern, UserAgent: userAgent()},
	)
	if err != nil {
		return err
	}

	transports := []fetch.Transport{
		fetch.NewHTTPTransport(),
		fetch.NewCurlTransport(reporter.Verbose()),
		fetch.NewWgetTransport(reporter.Verbose()),
	}

	archivePath := ws.Path(filepath.Base(url))
	if err := fetch.Download(ctx, reporter, transports, url, archivePath); err != nil {
		return err
	}

	verifyArchive(ctx, reporter, transports, url, archivePath, ws)

	extractDir := ws.Path("extracted")
	reporter.Info("extracting %s", filepath.Base(archivePath))
	if err := extract.Run(reporter, extract.DefaultChain(reporter.Verbose()), archivePath, extractDir); err != nil {
		return err
	}

	count, err := install.Install(reporter, extractDir, targetDir, install.PluginFiles)
	if err != nil {
		return err
	}

	reporter.Success("Installed %d plugin file(s) to %s", count, targetDir)
	return nil
}

// verifyArchive runs the best-effort integrity checks: the sibling .sha256
// file and, when the user has the upstream signing key on disk, the
// detached .sig. Neither can fail the run; the pipeline's hard integrity
// signal is "archive downloaded and non-empty".
func verifyArchive(ctx context.Context, reporter *ui.Reporter, transports []fetch.Transport, url, archivePath string, ws *workspace.Workspace) {
	checksumPath := archivePath + ".sha256"
	if fetch.FetchCompanion(ctx, reporter, transports, url+".sha256", checksumPath) {
		ok, err := fetch.CheckSHA256(archivePath, checksumPath)
		switch {
		case err != nil:
			reporter.Info("checksum file unusable, skipping verification: %v", err)
		case !ok:
			reporter.Warn("checksum mismatch for %s; continuing anyway", filepath.Base(archivePath))
		default:
			reporter.Info("checksum verified")
		}
	} else {
		reporter.Info("no checksum published, skipping verification")
	}

	keyPath, err := fetch.SigningKeyPath()
	if err != nil {
		return
	}
	if _, err := os.Stat(keyPath); err != nil {
		reporter.Detail("no signing key at %s, skipping signature check", keyPath)
		return
	}
	sigPath := archivePath + ".sig"
	if !fetch.FetchCompanion(ctx, reporter, transports, url+".sig", sigPath) {
		reporter.Info("no signature published, skipping signature check")
		return
	}
	if err := fetch.VerifySignature(archivePath, sigPath, keyPath); err != nil {
		reporter.Warn("signature check failed: %v", err)
		return
	}
	reporter.Info("signature verified")
}

// removeOnSignal makes sure the scratch workspace disappears even when the
// run is interrupted. 130 is the conventional exit code for SIGINT.
func removeOnSignal(ws *workspace.Workspace) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		ws.Cleanup()
		os.Exit(130)
	}()
}

func userAgent() string {
	return fmt.Sprintf("squelch-installer/%s", Version)
}
