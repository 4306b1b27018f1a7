// Package inmem serves the portal's data from embedded fixtures and keeps sessions in memory.
package inmem

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/gateway/core/dashboard"
	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/core/finance"
	"github.com/trezcool/gateway/core/planner"
	"github.com/trezcool/gateway/core/schedule"
)

//go:embed fixtures.yaml
var fixtures []byte

type (
	// Fixtures is everything the portal displays.
	Fixtures struct {
		Student       degree.Student               `yaml:"student"`
		Requirements  []degree.RequirementCategory `yaml:"requirements"`
		Semesters     []degree.SemesterRecord      `yaml:"semesters"`
		Offerings     []planner.Offering           `yaml:"offerings"`
		Meetings      []schedule.Meeting           `yaml:"meetings"`
		Holds         []schedule.Hold              `yaml:"holds"`
		Enrollments   []schedule.Enrollment        `yaml:"enrollments"`
		Announcements []dashboard.Announcement     `yaml:"announcements"`
		Todos         []dashboard.Todo             `yaml:"todos"`
		Notifications []dashboard.Notification     `yaml:"notifications"`
		Apps          []dashboard.App              `yaml:"apps"`
		Account       finance.Account              `yaml:"account"`
		AidYear       finance.AidYear              `yaml:"aid_year"`
	}

	DB struct {
		sync.RWMutex
		data Fixtures
	}
)

// Open loads the embedded fixtures.
func Open() (*DB, error) {
	return Load(bytes.NewReader(fixtures))
}

// OpenFile loads fixtures from a YAML file instead of the embedded ones.
func OpenFile(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening fixtures")
	}
	defer f.Close()
	return Load(f)
}

// Load reads fixtures from r; unknown keys are rejected.
func Load(r io.Reader) (*DB, error) {
	var data Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(err, "decoding fixtures")
	}
	return &DB{data: data}, nil
}

// Dump writes the data set as YAML that Load accepts back.
func (db *DB) Dump(w io.Writer) error {
	db.RLock()
	defer db.RUnlock()

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(db.data); err != nil {
		return errors.Wrap(err, "encoding fixtures")
	}
	return errors.Wrap(enc.Close(), "flushing fixtures")
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
