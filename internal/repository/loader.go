package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
	"github.com/garvonious-ui/cuervo-intel-sub000/internal/common"
)

// ReportReader is the downstream read contract over the output tree.
type ReportReader interface {
	LoadAll(rt constants.ReportType) (map[string]json.RawMessage, error)
	Load(rt constants.ReportType, id string) (json.RawMessage, error)
	SectionAcross(rt constants.ReportType, section string) (map[string]json.RawMessage, error)
	Counts() (map[constants.ReportType]int, error)
}

type Loader struct {
	base string
	log  *slog.Logger
}

func NewLoader(base string, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{base: base, log: log}
}

// LoadAll returns every report of one type keyed by file stem. Files whose
// name starts with "_" are skipped, as are unreadable or malformed ones.
// A missing type directory yields an empty map.
func (l *Loader) LoadAll(rt constants.ReportType) (map[string]json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	if !rt.Valid() {
		return nil, common.NewAppError("UNKNOWN_REPORT_TYPE", string(rt), common.ErrUnknownReportType)
	}
	dir := filepath.Join(l.base, rt.Dir())
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, common.WrapError(err, "read report dir")
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".json" {
			continue
		}
		raw, err := readJSON(filepath.Join(dir, name))
		if err != nil {
			l.log.Warn("skipping report", "path", filepath.Join(dir, name), "error", err)
			continue
		}
		out[strings.TrimSuffix(name, ".json")] = raw
	}
	return out, nil
}

// Load returns one report by identifier; id is sanitised the same way the
// writer does it.
func (l *Loader) Load(rt constants.ReportType, id string) (json.RawMessage, error) {
	if !rt.Valid() {
		return nil, common.NewAppError("UNKNOWN_REPORT_TYPE", string(rt), common.ErrUnknownReportType)
	}
	path := filepath.Join(l.base, rt.Dir(), SanitizeIdentifier(id)+".json")
	raw, err := readJSON(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.NewAppError("NOT_FOUND", fmt.Sprintf("%s %q", rt, id), common.ErrNotFound)
		}
		return nil, common.WrapError(err, "load report")
	}
	return raw, nil
}

// SectionAcross collects one top-level section from every report of a type.
// Reports without the section are left out.
func (l *Loader) SectionAcross(rt constants.ReportType, section string) (map[string]json.RawMessage, error) {
	all, err := l.LoadAll(rt)
	if err != nil {
		return nil, err
	}
	out := map[string]json.RawMessage{}
	for stem, raw := range all {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		if v, ok := fields[section]; ok {
			out[stem] = v
		}
	}
	return out, nil
}

// Counts reports how many reports each type has on disk.
func (l *Loader) Counts() (map[constants.ReportType]int, error) {
	out := make(map[constants.ReportType]int, len(constants.ReportTypes()))
	for _, rt := range constants.ReportTypes() {
		all, err := l.LoadAll(rt)
		if err != nil {
			return nil, err
		}
		out[rt] = len(all)
	}
	return out, nil
}

// Stems lists report stems of a type in sorted order.
func Stems(all map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func readJSON(path string) (json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("malformed json in %s", path)
	}
	return json.RawMessage(b), nil
}
