package editor

import (
	"sort"

	"storefront/internal/domain"
)

// InitializeStructuralComponents makes sure the announcement bar, header,
// footer and cart drawer exist exactly once. Missing ones are created from
// catalog defaults; existing ones are left where they are. The header group
// is re-sorted by SortOrder and renumbered afterwards. The dirty flag is not
// touched. Returns true when anything was added.
func (s *Store) InitializeStructuralComponents() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := false
	header := s.tree.HeaderGroup

	if s.tree.Count(domain.SectionAnnouncementBar) == 0 {
		bar, err := s.newSection(domain.SectionAnnouncementBar)
		if err != nil {
			return false, err
		}
		bar.Visible = false
		bar.SortOrder = 0
		header = append([]domain.Section{bar}, header...)
		added = true
	}
	if s.tree.Count(domain.SectionHeader) == 0 {
		h, err := s.newSection(domain.SectionHeader)
		if err != nil {
			return false, err
		}
		h.Visible = true
		h.SortOrder = len(header)
		header = append(header, h)
		added = true
	}
	if s.tree.Count(domain.SectionFooter) == 0 {
		f, err := s.newSection(domain.SectionFooter)
		if err != nil {
			return false, err
		}
		f.SortOrder = len(s.tree.FooterGroup)
		s.tree.FooterGroup = append(s.tree.FooterGroup, f)
		added = true
	}
	if s.tree.Count(domain.SectionCartDrawer) == 0 {
		cd, err := s.newSection(domain.SectionCartDrawer)
		if err != nil {
			return false, err
		}
		cd.Visible = false
		cd.SortOrder = len(s.tree.AsideGroup)
		s.tree.AsideGroup = append(s.tree.AsideGroup, cd)
		added = true
	}

	sort.SliceStable(header, func(i, j int) bool {
		return header[i].SortOrder < header[j].SortOrder
	})
	domain.Reindex(header)
	s.tree.HeaderGroup = header

	if added {
		s.revision++
	}
	return added, nil
}
