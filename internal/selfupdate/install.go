package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrNoAsset       = errors.New("release has no build for this platform")
)

const checksumsFile = "checksums.txt"

// Stage names one step of an update.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateProgress is reported once per stage.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// UpdateInput selects what to install. An empty TargetVersion means the
// latest release, which must be newer than CurrentVersion.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// Update replaces the running binary with a release build. progress may be
// nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	report := func(s Stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: s, Message: fmt.Sprintf(format, args...)})
		}
	}

	if semverOf(input.CurrentVersion) == "" {
		return ErrDevBuild
	}

	report(StageResolve, "Looking up release...")
	rel, err := c.release(ctx, input.TargetVersion)
	if err != nil {
		return err
	}
	if input.TargetVersion == "" && !newer(rel.Tag, input.CurrentVersion) {
		return ErrAlreadyLatest
	}

	archiveName, binary, err := archiveFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	archive, ok := rel.Asset(archiveName)
	if !ok {
		return fmt.Errorf("%w: %s missing from %s", ErrNoAsset, archiveName, rel.Tag)
	}
	sums, ok := rel.Asset(checksumsFile)
	if !ok {
		return fmt.Errorf("%w: %s missing from %s", ErrNoAsset, checksumsFile, rel.Tag)
	}

	report(StageDownload, "Downloading %s...", archive.Name)
	data, err := c.get(ctx, archive.DownloadURL, "application/octet-stream")
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Verifying checksum...")
	list, err := c.get(ctx, sums.DownloadURL, "application/octet-stream")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := checksumFor(list, archive.Name)
	if !ok {
		return fmt.Errorf("%w: %s not listed in %s", ErrChecksum, archive.Name, checksumsFile)
	}
	if got := sha256Hex(data); got != want {
		return fmt.Errorf("%w: %s has %s, want %s", ErrChecksum, archive.Name, got, want)
	}

	report(StageExtract, "Extracting %s...", binary)
	bin, err := unpack(archive.Name, data, binary)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate running binary: %w", err)
	}
	report(StageInstall, "Installing to %s...", target)
	if err := replaceFile(target, bin); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	report(StageDone, "Updated to %s", rel.Tag)
	return nil
}

// archives follows the goreleaser layout of the release workflow. macOS
// ships one universal binary.
var archives = map[string]string{
	"darwin/amd64":  "rolwijzer_Darwin_all.tar.gz",
	"darwin/arm64":  "rolwijzer_Darwin_all.tar.gz",
	"linux/amd64":   "rolwijzer_Linux_x86_64.tar.gz",
	"linux/arm64":   "rolwijzer_Linux_arm64.tar.gz",
	"linux/386":     "rolwijzer_Linux_i386.tar.gz",
	"windows/amd64": "rolwijzer_Windows_x86_64.zip",
	"windows/arm64": "rolwijzer_Windows_arm64.zip",
}

func archiveFor(goos, goarch string) (archive, binary string, err error) {
	archive, ok := archives[goos+"/"+goarch]
	if !ok {
		return "", "", fmt.Errorf("%w: %s/%s", ErrNoAsset, goos, goarch)
	}
	binary = "rolwijzer"
	if goos == "windows" {
		binary += ".exe"
	}
	return archive, binary, nil
}

// checksumFor finds name in a sha256sum listing ("<hex>  <name>" per line).
func checksumFor(list []byte, name string) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(list))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && strings.TrimPrefix(fields[1], "*") == name {
			return strings.ToLower(fields[0]), true
		}
	}
	return "", false
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// unpack returns the file called binary from a .tar.gz or .zip archive.
func unpack(archiveName string, data []byte, binary string) ([]byte, error) {
	if strings.HasSuffix(archiveName, ".zip") {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		for _, f := range zr.File {
			if path.Base(f.Name) != binary || f.FileInfo().IsDir() {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(io.LimitReader(rc, maxDownload))
		}
		return nil, fmt.Errorf("%s not in %s", binary, archiveName)
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not in %s", binary, archiveName)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == binary {
			return io.ReadAll(io.LimitReader(tr, maxDownload))
		}
	}
}

// replaceFile swaps target for data through a temp file in the same
// directory, so the rename is atomic. The file mode of target is kept.
func replaceFile(target string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".rolwijzer-update-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
