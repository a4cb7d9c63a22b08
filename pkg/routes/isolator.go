package routes

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/zonekit/zonekit/pkg/zones"
)

// Isolate builds the per-zone view of the global route table. It is a pure
// projection: the input table is never modified, no global state is touched,
// and calling it concurrently for different zones yields the same results as
// calling it sequentially.
//
// External paths are namespaced as /<prefix>/<version>/<path>; Handler and
// Metadata pass through untouched so internal dispatch is unaffected.
func Isolate(zone *zones.Zone, table *Table) *IsolatedTable {
	isolated := &IsolatedTable{
		Zone:    zone.Name,
		Version: zone.Version,
		Prefix:  zone.PathPrefix,
	}

	for _, e := range table.Entries {
		if !zone.HasApp(e.App) {
			continue
		}

		entry := e
		entry.Path = namespacePath(zone.PathPrefix, zone.Version, e.Path)
		if e.Metadata != nil {
			entry.Metadata = make(map[string]string, len(e.Metadata))
			for k, v := range e.Metadata {
				entry.Metadata[k] = v
			}
		}
		isolated.Entries = append(isolated.Entries, entry)
	}

	sort.SliceStable(isolated.Entries, func(i, j int) bool {
		a, b := isolated.Entries[i], isolated.Entries[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Method < b.Method
	})

	return isolated
}

// Fingerprint returns a stable content hash of the isolated table. Two
// isolations of an unchanged route table produce the same fingerprint, which
// the extraction cache uses to skip re-running the schema tool.
func (t *IsolatedTable) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", t.Zone, t.Version, t.Prefix)
	for _, e := range t.Entries {
		fmt.Fprintf(h, "%s\x01%s\x01%s\x01%s\x01%s\x00", e.App, e.Method, e.Path, e.Handler, e.Name)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func namespacePath(prefix, version, path string) string {
	p := strings.TrimPrefix(path, "/")
	return "/" + prefix + "/" + version + "/" + p
}
