package ingest

import (
	"strings"

	"github.com/openparl/tally/internal/members"
)

// memberResolver matches scraped names to stored member records. Exact
// name matches win; otherwise a first+last key matches members listed
// with middle initials, but only when unambiguous.
type memberResolver struct {
	exact     map[string]members.Member
	firstLast map[string][]members.Member
	active    []members.Member
}

func newMemberResolver() *memberResolver {
	return &memberResolver{
		exact:     make(map[string]members.Member),
		firstLast: make(map[string][]members.Member),
	}
}

func (r *memberResolver) add(m members.Member) {
	r.exact[strings.ToLower(m.Name)] = m

	if key := firstLastKey(m.Name); key != "" {
		r.firstLast[key] = append(r.firstLast[key], m)
	}

	if m.Status == members.StatusActive {
		r.active = append(r.active, m)
	}
}

// Resolve returns the member matching the scraped name.
func (r *memberResolver) Resolve(name string) (*members.Member, bool) {
	cleaned := CleanName(name)
	if cleaned == "" {
		return nil, false
	}

	if m, ok := r.exact[strings.ToLower(cleaned)]; ok {
		return &m, true
	}

	if matches := r.firstLast[firstLastKey(cleaned)]; len(matches) == 1 {
		return &matches[0], true
	}
	return nil, false
}

// Active returns the stored members with active status.
func (r *memberResolver) Active() []members.Member {
	return r.active
}
