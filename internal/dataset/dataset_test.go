package dataset

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"antbee-trainer/internal/features"
)

func writePNG(t *testing.T, path string, shade uint8) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func makeRoot(t *testing.T, ants, bees int) string {
	t.Helper()
	root := t.TempDir()
	for i := 0; i < ants; i++ {
		writePNG(t, filepath.Join(root, AntDir, "ant-"+string(rune('a'+i))+".png"), uint8(10*i))
	}
	for i := 0; i < bees; i++ {
		writePNG(t, filepath.Join(root, BeeDir, "bee-"+string(rune('a'+i))+".png"), uint8(200+5*i))
	}
	return root
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 1)
	writePNG(t, filepath.Join(dir, "a.jpg"), 2)
	writePNG(t, filepath.Join(dir, "nested", "c.png"), 3)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	paths, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	want := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png")}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths[%d]=%s want %s", i, paths[i], want[i])
		}
	}
}

func TestBuildRoundTrip(t *testing.T) {
	root := makeRoot(t, 3, 2)

	ds, err := Build(root, BuildOptions{RNG: rand.New(rand.NewSource(1)), NumWorkers: 2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ds.Len() != 5 {
		t.Fatalf("expected 5 examples, got %d", ds.Len())
	}
	if got := ds.Count(Ant); got != 3 {
		t.Fatalf("expected 3 ants, got %d", got)
	}
	if got := ds.Count(Bee); got != 2 {
		t.Fatalf("expected 2 bees, got %d", got)
	}
	for i, ex := range ds.Examples() {
		if len(ex.Features) != features.InputDim {
			t.Fatalf("example %d has %d features, want %d", i, len(ex.Features), features.InputDim)
		}
	}
}

func TestBuildSeededShuffleIsReproducible(t *testing.T) {
	root := makeRoot(t, 4, 4)

	order := func(seed int64) []Label {
		ds, err := Build(root, BuildOptions{RNG: rand.New(rand.NewSource(seed))})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		labels := make([]Label, 0, ds.Len())
		for _, ex := range ds.Examples() {
			labels = append(labels, ex.Label)
		}
		return labels
	}

	first := order(7)
	second := order(7)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seeded shuffle diverged at %d: %v vs %v", i, first, second)
		}
	}
}

func TestBuildMissingClassDir(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, AntDir, "a.png"), 1)

	if _, err := Build(root, BuildOptions{}); err == nil {
		t.Fatal("expected error for missing bees directory")
	}
}

func TestBuildRootNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "root")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Build(file, BuildOptions{}); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestBuildAbortsOnUndecodableImage(t *testing.T) {
	root := makeRoot(t, 2, 1)
	if err := os.WriteFile(filepath.Join(root, AntDir, "broken.png"), []byte("junk"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Build(root, BuildOptions{NumWorkers: 4}); err == nil {
		t.Fatal("expected build to fail on an undecodable image")
	}
}

func TestLabelTargets(t *testing.T) {
	if Ant.Target() != 0 {
		t.Fatalf("ant target = %f, want 0", Ant.Target())
	}
	if Bee.Target() != 1 {
		t.Fatalf("bee target = %f, want 1", Bee.Target())
	}
	if Ant.String() != "ant" || Bee.String() != "bee" {
		t.Fatalf("unexpected label names: %s %s", Ant, Bee)
	}
}
