package transcript

import "strings"

// Reconciler folds raw transcript fragments into a single growing
// transcript. Fragments may be full restatements, deltas, or unrelated
// new segments; the merge never deletes confirmed text, so the transcript
// only grows until Reset or Sync.
type Reconciler struct {
	text string
}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Apply merges one fragment and returns the increment to append to the
// displayed transcript. An empty return means the fragment added nothing
// new.
func (r *Reconciler) Apply(fragment string) string {
	f := strings.TrimSpace(fragment)
	if f == "" {
		return ""
	}
	if r.text == "" {
		r.text = f
		return f
	}
	if f == r.text {
		return ""
	}
	if strings.HasPrefix(f, r.text) {
		increment := f[len(r.text):]
		r.text = f
		return increment
	}
	if strings.HasSuffix(r.text, f) {
		return ""
	}
	if overlap := longestOverlap(r.text, f); overlap > 0 {
		increment := f[overlap:]
		if increment == "" {
			return ""
		}
		r.text += increment
		return increment
	}

	separator := "\n"
	if strings.HasSuffix(r.text, "\n") {
		separator = ""
	}
	increment := separator + f
	r.text += increment
	return increment
}

// Text returns the confirmed transcript so far.
func (r *Reconciler) Text() string {
	return r.text
}

// Reset clears the transcript, e.g. on session restart or a caller clear.
func (r *Reconciler) Reset() {
	r.text = ""
}

// Sync re-baselines the transcript to an externally edited snapshot so
// later fragments reconcile against what the caller actually shows.
func (r *Reconciler) Sync(text string) {
	r.text = text
}

// longestOverlap returns the length of the longest suffix of previous
// that is a prefix of current. Longer overlaps win.
func longestOverlap(previous, current string) int {
	max := len(previous)
	if len(current) < max {
		max = len(current)
	}
	for size := max; size > 0; size-- {
		if strings.HasPrefix(current, previous[len(previous)-size:]) {
			return size
		}
	}
	return 0
}
