package record

import (
	"strings"
	"time"
)

// Record represents one saved item: a bookmark or a visited-page entry.
//
// Records have value semantics. Nothing in a Record is globally unique;
// duplicate URLs are detected (see Library.FindDuplicates), not prevented.
type Record struct {
	// URL is the primary content reference.
	URL string `json:"url"`

	// Name is the user- or auto-assigned label and the primary search target.
	Name string `json:"name"`

	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`

	// Tags are user categories. Membership checks are case-insensitive and
	// the add-helpers keep the slice free of case-insensitive duplicates.
	Tags []string `json:"tags"`

	Favorite bool `json:"favorite"`
	Archived bool `json:"archived"`
	Priority int  `json:"priority"`

	// Rating is clamped to [0, 5] by SetRating.
	Rating float64 `json:"rating"`

	AccessCount  int       `json:"accessCount"`
	LastAccessed time.Time `json:"lastAccessed"`

	// SharedWith holds collaborator identifiers, deduplicated like Tags.
	SharedWith []string `json:"sharedWith"`

	ThumbnailPath string `json:"thumbnailPath"`
	Description   string `json:"description"`
	Notes         string `json:"notes"`
	Icon          string `json:"icon"`
	Owner         string `json:"owner"`
	Folder        string `json:"folder"`
}

// New creates a Record with both timestamps set to now.
func New(name, url string) Record {
	now := time.Now()
	return Record{
		URL:        url,
		Name:       name,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// SetRating assigns a rating clamped to the valid [0, 5] range.
func (r *Record) SetRating(rating float64) {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	r.Rating = rating
}

// AddTag appends tag unless an equal tag (ignoring case) is already present.
// It reports whether the tag was added.
func (r *Record) AddTag(tag string) bool {
	if containsFold(r.Tags, tag) {
		return false
	}
	r.Tags = append(r.Tags, tag)
	return true
}

// RemoveTag removes every tag equal to tag ignoring case.
// It reports whether anything was removed.
func (r *Record) RemoveTag(tag string) bool {
	return removeFold(&r.Tags, tag)
}

// HasTag reports whether the record carries tag, ignoring case.
func (r *Record) HasTag(tag string) bool {
	return containsFold(r.Tags, tag)
}

// AddSharedWith appends a collaborator identifier unless an equal one
// (ignoring case) is already present. It reports whether it was added.
func (r *Record) AddSharedWith(user string) bool {
	if containsFold(r.SharedWith, user) {
		return false
	}
	r.SharedWith = append(r.SharedWith, user)
	return true
}

// RemoveSharedWith removes every entry equal to user ignoring case.
func (r *Record) RemoveSharedWith(user string) bool {
	return removeFold(&r.SharedWith, user)
}

// IsSharedWith reports whether user appears in SharedWith, ignoring case.
func (r *Record) IsSharedWith(user string) bool {
	return containsFold(r.SharedWith, user)
}

// Touch records one access: the counter is incremented and LastAccessed
// is set to now.
func (r *Record) Touch(now time.Time) {
	r.AccessCount++
	r.LastAccessed = now
}

// Equal reports field-for-field equality. Empty and nil string collections
// compare equal, so a decoded record matches its pre-encoding original even
// when the codec normalizes empty slices.
func (r Record) Equal(other Record) bool {
	return r.URL == other.URL &&
		r.Name == other.Name &&
		r.CreatedAt.Equal(other.CreatedAt) &&
		r.ModifiedAt.Equal(other.ModifiedAt) &&
		stringsEqual(r.Tags, other.Tags) &&
		r.Favorite == other.Favorite &&
		r.Archived == other.Archived &&
		r.Priority == other.Priority &&
		r.Rating == other.Rating &&
		r.AccessCount == other.AccessCount &&
		r.LastAccessed.Equal(other.LastAccessed) &&
		stringsEqual(r.SharedWith, other.SharedWith) &&
		r.ThumbnailPath == other.ThumbnailPath &&
		r.Description == other.Description &&
		r.Notes == other.Notes &&
		r.Icon == other.Icon &&
		r.Owner == other.Owner &&
		r.Folder == other.Folder
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	if r.SharedWith != nil {
		out.SharedWith = append([]string(nil), r.SharedWith...)
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func removeFold(list *[]string, s string) bool {
	out := (*list)[:0]
	removed := false
	for _, v := range *list {
		if strings.EqualFold(v, s) {
			removed = true
			continue
		}
		out = append(out, v)
	}
	*list = out
	return removed
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
