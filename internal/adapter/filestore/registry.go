package filestore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bmitracker/internal/domain"
)

const registryFields = 4

// parseProfile decodes a registry line. ok is false for lines with fewer than
// four fields or a non-numeric age.
func (s *Store) parseProfile(line string) (domain.Profile, bool) {
	parts := splitFields(line)
	if len(parts) < registryFields {
		return domain.Profile{}, false
	}
	age, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.Profile{}, false
	}
	p := domain.Profile{Name: parts[0], Age: age, Gender: parts[2]}
	created, err := time.ParseInLocation(domain.TimestampLayout, parts[3], time.Local)
	if err != nil {
		s.log.Warn("unreadable createdAt in registry", "user", parts[0], "value", parts[3])
	} else {
		p.CreatedAt = created
	}
	return p, true
}

// SaveProfile rewrites the registry with the profile updated in place, or
// appended when it is new. An existing createdAt field is kept verbatim.
func (s *Store) SaveProfile(ctx context.Context, p domain.Profile, now time.Time) (*domain.Profile, error) {
	lines, err := readLines(s.registryPath())
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var saved *domain.Profile
	age := strconv.Itoa(p.Age)
	for i, l := range lines {
		parts := splitFields(l)
		if len(parts) < registryFields || parts[0] != p.Name {
			continue
		}
		lines[i] = joinFields(p.Name, age, p.Gender, parts[3])
		if saved == nil {
			if existing, ok := s.parseProfile(lines[i]); ok {
				saved = &existing
			}
		}
	}
	if saved == nil {
		p.CreatedAt = now.Truncate(time.Second)
		lines = append(lines, joinFields(p.Name, age, p.Gender, p.CreatedAt.Format(domain.TimestampLayout)))
		saved = &p
	}

	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	if err := writeLinesAtomic(s.registryPath(), lines); err != nil {
		return nil, fmt.Errorf("write registry: %w", err)
	}
	s.log.Debug("user saved", "user", p.Name)
	return saved, nil
}

// GetProfile returns the first registry entry for name, or nil.
func (s *Store) GetProfile(ctx context.Context, name string) (*domain.Profile, error) {
	lines, err := readLines(s.registryPath())
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	for _, l := range lines {
		p, ok := s.parseProfile(l)
		if ok && p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

// ListProfileNames returns the names of all well-formed registry lines in
// file order.
func (s *Store) ListProfileNames(ctx context.Context) ([]string, error) {
	lines, err := readLines(s.registryPath())
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		if p, ok := s.parseProfile(l); ok {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// DeleteProfile removes every registry line for name and then the user's
// records file. It returns false when no line matched.
func (s *Store) DeleteProfile(ctx context.Context, name string) (bool, error) {
	lines, err := readLines(s.registryPath())
	if err != nil {
		return false, fmt.Errorf("read registry: %w", err)
	}

	kept := make([]string, 0, len(lines))
	found := false
	for _, l := range lines {
		parts := splitFields(l)
		if len(parts) > 0 && parts[0] == name {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return false, nil
	}

	if err := writeLinesAtomic(s.registryPath(), kept); err != nil {
		return false, fmt.Errorf("write registry: %w", err)
	}
	if _, err := s.DeleteMeasurements(ctx, name); err != nil {
		return true, err
	}
	s.log.Debug("user deleted", "user", name)
	return true, nil
}
