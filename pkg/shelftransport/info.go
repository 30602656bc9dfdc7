package shelftransport

import (
	"strings"

	"github.com/marmos91/shelf/pkg/shelf"
)

// ParseInfo parses a node's raw info-command response: `;`-separated
// entries, each `name=value`. Entries without an `=` map the whole token
// to the empty string. Values keep any nested record syntax verbatim;
// callers feed them to ParseInfoRecords when they expect records.
func ParseInfo(raw string) map[string]string {
	out := map[string]string{}
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, value, found := strings.Cut(entry, "=")
		if !found {
			out[name] = ""
			continue
		}
		out[name] = value
	}
	return out
}

// ParseInfoRecords parses one info value holding `:`-separated records of
// `,`-separated `k=v` pairs, e.g. a per-namespace or per-index listing.
func ParseInfoRecords(value string) []map[string]string {
	var records []map[string]string
	for _, rec := range strings.Split(value, ":") {
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		fields := map[string]string{}
		for _, pair := range strings.Split(rec, ",") {
			k, v, found := strings.Cut(pair, "=")
			if !found {
				continue
			}
			fields[k] = v
		}
		if len(fields) > 0 {
			records = append(records, fields)
		}
	}
	return records
}

// MergeInfoViews folds per-node info responses into one view, skipping
// nodes whose response failed to parse into any entries — one node's bad
// response never poisons the merged view. Nodes are visited in map order,
// so which node's value wins on a key conflict is not defined; callers
// that need per-node values keep the originals.
func MergeInfoViews(perNode map[string]string) map[string]string {
	merged := map[string]string{}
	for _, raw := range perNode {
		entries := ParseInfo(raw)
		if len(entries) == 0 {
			continue
		}
		for k, v := range entries {
			merged[k] = v
		}
	}
	return merged
}

// InfoIndexMetadata extracts secondary-index metadata from a parsed
// `sindex` record, tolerating missing fields.
func InfoIndexMetadata(record map[string]string) shelf.IndexMetadata {
	return shelf.IndexMetadata{
		Name:      record["indexname"],
		Namespace: record["ns"],
		Set:       record["set"],
		Bin:       record["bin"],
		Type:      shelf.IndexType(record["type"]),
	}
}
