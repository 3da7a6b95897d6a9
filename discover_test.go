package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(t *testing.T, root string) []string {
	t.Helper()
	var got []string
	for path, err := range fixtures(root) {
		if err != nil {
			t.Fatalf("fixtures(%s) error = %v", root, err)
		}
		got = append(got, path)
	}
	return got
}

func TestFixturesRecursion(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"z.burntest":            "",
		"a.burntest":            "",
		"a.txt":                 "",
		"m/n/o/p/deep.burntest": "",
		"m/n/skip.md":           "",
		"m/b.burntest":          "",
		"m/c.burntest.bak":      "",
		"empty/.keep":           "",
	})

	got := collect(t, dir)
	want := []string{
		filepath.Join(dir, "a.burntest"),
		filepath.Join(dir, "m", "b.burntest"),
		filepath.Join(dir, "m", "n", "o", "p", "deep.burntest"),
		filepath.Join(dir, "z.burntest"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fixtures() mismatch (-want +got):\n%s", diff)
	}
}

func TestFixturesSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.burntest": "", "a.txt": ""})

	if diff := cmp.Diff([]string{filepath.Join(dir, "a.burntest")}, collect(t, filepath.Join(dir, "a.burntest"))); diff != "" {
		t.Errorf("fixtures(file) mismatch (-want +got):\n%s", diff)
	}
	if got := collect(t, filepath.Join(dir, "a.txt")); len(got) != 0 {
		t.Errorf("fixtures(non-fixture) = %q, want nothing", got)
	}
}

func TestFixturesCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.burntest": "", "sub/b.burntest": ""})
	t.Chdir(dir)

	want := []string{"a.burntest", filepath.Join("sub", "b.burntest")}
	if diff := cmp.Diff(want, collect(t, ".")); diff != "" {
		t.Errorf("fixtures(.) mismatch (-want +got):\n%s", diff)
	}
}

func TestFixturesSymlinks(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"real/a.burntest":  "",
		"other/b.burntest": "",
	})
	links := map[string]string{
		filepath.Join(dir, "real", "loop"):            filepath.Join(dir, "real"),
		filepath.Join(dir, "real", "other"):           filepath.Join(dir, "other"),
		filepath.Join(dir, "real", "link.burntest"):   filepath.Join(dir, "other", "b.burntest"),
		filepath.Join(dir, "real", "broken.burntest"): filepath.Join(dir, "nowhere"),
	}
	for link, target := range links {
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	}

	got := collect(t, filepath.Join(dir, "real"))
	want := []string{
		filepath.Join(dir, "real", "a.burntest"),
		filepath.Join(dir, "real", "link.burntest"),
		filepath.Join(dir, "real", "other", "b.burntest"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fixtures() mismatch (-want +got):\n%s", diff)
	}
}

func TestFixturesStopEarly(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.burntest": "", "b/c.burntest": "", "d.burntest": ""})

	var got []string
	for path, err := range fixtures(dir) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, path)
		if len(got) == 2 {
			break
		}
	}
	want := []string{filepath.Join(dir, "a.burntest"), filepath.Join(dir, "b", "c.burntest")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fixtures() mismatch (-want +got):\n%s", diff)
	}
}

func TestFixturesUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	if err := os.Mkdir(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	var sawErr bool
	for _, err := range fixtures(dir) {
		if err != nil {
			sawErr = true
		}
	}
	if !sawErr {
		t.Error("fixtures() over an unreadable directory yielded no error")
	}
}
