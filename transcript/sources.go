package transcript

import "github.com/campus-ai/tutor/core/chat"

// MergeSources folds newly arrived citation candidates into the sources
// accumulated so far for one turn. Candidates without a URI are dropped; a
// URI already present is skipped, so the first occurrence fixes both
// position and title. A candidate without a title falls back to its URI.
//
// The merge is monotonic: existing entries are never removed, reordered,
// or retitled, so it is safe to call after every event without
// reprocessing prior candidates.
func MergeSources(existing []chat.Source, candidates []chat.Source) []chat.Source {
	merged := existing
	for _, cand := range candidates {
		if cand.URI == "" {
			continue
		}
		if hasURI(merged, cand.URI) {
			continue
		}

		title := cand.Title
		if title == "" {
			title = cand.URI
		}
		merged = append(merged, chat.Source{URI: cand.URI, Title: title})
	}
	return merged
}

func hasURI(sources []chat.Source, uri string) bool {
	for _, s := range sources {
		if s.URI == uri {
			return true
		}
	}
	return false
}
