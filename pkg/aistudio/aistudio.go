package aistudio

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// The selector is the credential boundary: the rest of the system only looks
// at whether a usable key is selected and asks for a different one when the
// remote service rejects it. Key lifecycle stays opaque.

var ErrNoKeySelected = errors.New("no API key selected")

type Credential struct {
	Key   string
	Label string
}

type IKeySelector interface {
	HasSelectedKey() bool
	ActiveKey() (Credential, error)
	SelectKey(label string) error
	Labels() []string
}

type keySelector struct {
	mu     sync.RWMutex
	keys   []Credential
	active int
}

// New reads GEMINI_API_KEY (labelled by APP_TENANT_LABEL) plus any extra
// "label=key" pairs from GEMINI_API_KEYS. The primary key, when present, is
// pre-selected so absence is detectable before any call is attempted.
func New() IKeySelector {
	s := &keySelector{active: -1}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		label := os.Getenv("APP_TENANT_LABEL")
		if label == "" {
			label = "default"
		}
		s.keys = append(s.keys, Credential{Key: key, Label: label})
		s.active = 0
	}

	for _, pair := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		label, key, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || label == "" || key == "" {
			continue
		}
		s.keys = append(s.keys, Credential{Key: key, Label: label})
		if s.active == -1 {
			s.active = 0
		}
	}

	return s
}

func (s *keySelector) HasSelectedKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active >= 0 && s.active < len(s.keys)
}

func (s *keySelector) ActiveKey() (Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active < 0 || s.active >= len(s.keys) {
		return Credential{}, ErrNoKeySelected
	}
	return s.keys[s.active], nil
}

func (s *keySelector) SelectKey(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cred := range s.keys {
		if cred.Label == label {
			s.active = i
			return nil
		}
	}
	return errors.New("unknown API key label: " + label)
}

func (s *keySelector) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	labels := make([]string, 0, len(s.keys))
	for _, cred := range s.keys {
		labels = append(labels, cred.Label)
	}
	return labels
}
