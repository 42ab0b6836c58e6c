package store

// SetSetting stores a global key/value pair. Settings are household-wide,
// never child-scoped.
func (s *Store) SetSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Settings[key] = value
	if err := s.save(); err != nil {
		return err
	}
	s.dataChanged()
	return nil
}

// Setting returns a setting value and whether it was present.
func (s *Store) Setting(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.snap.Settings[key]
	return v, ok
}

// Settings returns a copy of all settings.
func (s *Store) Settings() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.snap.Settings))
	for k, v := range s.snap.Settings {
		out[k] = v
	}
	return out
}
