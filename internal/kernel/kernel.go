// Package kernel provisions the reference data files the pipeline needs:
// the NAIF leap-second, PCK and planetary ephemeris kernels, plus a JPL
// Horizons vector table for the spacecraft. Presence on disk alone gates a
// download; nothing is checksummed or re-validated.
package kernel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Canonical kernel filenames, shared with the ephem loader.
const (
	LeapSecondsFile = "naif0012.tls"
	PCKFile         = "pck00010.tpc"
	PlanetaryFile   = "de440s.bsp"
	SpacecraftFile  = "vgr2_nep.vec"
)

// File names one required kernel and where to fetch it from.
type File struct {
	Name string
	URL  string
}

// Required returns the full kernel set for the Neptune encounter.
func Required() []File {
	return []File{
		{Name: LeapSecondsFile, URL: "https://naif.jpl.nasa.gov/pub/naif/generic_kernels/lsk/naif0012.tls"},
		{Name: PCKFile, URL: "https://naif.jpl.nasa.gov/pub/naif/generic_kernels/pck/pck00010.tpc"},
		{Name: PlanetaryFile, URL: "https://naif.jpl.nasa.gov/pub/naif/generic_kernels/spk/planets/de440s.bsp"},
		{Name: SpacecraftFile, URL: horizonsVectorURL()},
	}
}

// horizonsVectorURL builds the Horizons API query for Voyager 2 state vectors
// relative to the Neptune barycenter, covering the encounter with margin.
func horizonsVectorURL() string {
	q := url.Values{}
	q.Set("format", "text")
	q.Set("COMMAND", "'-32'")
	q.Set("EPHEM_TYPE", "VECTORS")
	q.Set("CENTER", "'500@8'")
	q.Set("REF_PLANE", "FRAME")
	q.Set("VEC_TABLE", "2")
	q.Set("CSV_FORMAT", "YES")
	q.Set("START_TIME", "'1989-08-23'")
	q.Set("STOP_TIME", "'1989-08-28'")
	q.Set("STEP_SIZE", "'30m'")
	return "https://ssd.jpl.nasa.gov/api/horizons.api?" + q.Encode()
}

// Status reports what EnsureAll did for one kernel.
type Status struct {
	Name    string
	Fetched bool // false when the file was already present
}

// Store owns the kernel directory.
type Store struct {
	dir    string
	files  []File
	client *http.Client
}

// New creates a Store over dir with the default kernel set.
func New(dir string) *Store {
	return &Store{
		dir:   dir,
		files: Required(),
		client: &http.Client{
			Timeout: 5 * time.Minute, // de440s.bsp is ~32 MB
		},
	}
}

// WithFiles overrides the kernel set. Used by tests.
func (s *Store) WithFiles(files []File) *Store {
	s.files = files
	return s
}

// Dir returns the kernel directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the on-disk path for a kernel filename.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// EnsureAll makes every required kernel present, fetching the missing ones.
// Already-present files cause no network access. The first failure aborts.
func (s *Store) EnsureAll(ctx context.Context) ([]Status, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating kernel dir: %w", err)
	}

	statuses := make([]Status, 0, len(s.files))
	for _, f := range s.files {
		path := s.Path(f.Name)
		if _, err := os.Stat(path); err == nil {
			statuses = append(statuses, Status{Name: f.Name})
			continue
		}
		if err := s.fetch(ctx, f, path); err != nil {
			return statuses, err
		}
		statuses = append(statuses, Status{Name: f.Name, Fetched: true})
	}
	return statuses, nil
}

// fetch downloads one kernel and stores it unmodified.
func (s *Store) fetch(ctx context.Context, f File, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", f.Name, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", f.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %d", f.Name, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", f.Name, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}
	return out.Close()
}
