package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/domain-console/internal/api/metrics"
	"github.com/99minutos/domain-console/internal/core/domain"
	"github.com/99minutos/domain-console/internal/core/ports"
)

// ConfigLoader caches the configuration document of one session and answers
// enumerator lookups against it. Lookups never fetch.
type ConfigLoader struct {
	backend ports.ConfigBackend
	log     zerolog.Logger

	mu       sync.RWMutex
	doc      *domain.ConfigDocument
	inFlight int
	lastErr  error
}

func NewConfigLoader(backend ports.ConfigBackend, log zerolog.Logger) *ConfigLoader {
	return &ConfigLoader{backend: backend, log: log}
}

// Load fetches the document and replaces the cache. On failure the previous
// document is kept and the error is returned.
func (l *ConfigLoader) Load(ctx context.Context) (*domain.ConfigDocument, error) {
	l.mu.Lock()
	l.inFlight++
	l.lastErr = nil
	l.mu.Unlock()

	doc, err := l.backend.GetConfig(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight--
	if err != nil {
		l.lastErr = err
		metrics.ConfigLoadsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	if doc == nil {
		doc = &domain.ConfigDocument{}
	}
	l.doc = doc
	metrics.ConfigLoadsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	l.log.Debug().
		Int("versions", len(doc.Versions)).
		Int("enumerator_sets", len(doc.Enumerators)).
		Msg("config loaded")
	return doc, nil
}

// Document returns the cached document, or nil before the first successful load.
func (l *ConfigLoader) Document() *domain.ConfigDocument {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc
}

// Loading reports whether a Load is in progress.
func (l *ConfigLoader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inFlight > 0
}

// LastError is the error of the most recent Load, cleared when a new one starts.
func (l *ConfigLoader) LastError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// FindCollectionVersion returns the version string of the first entry naming
// collection.
func (l *ConfigLoader) FindCollectionVersion(collection string) (string, bool) {
	doc := l.Document()
	if doc == nil {
		return "", false
	}
	for _, v := range doc.Versions {
		if v.Collection() == collection {
			return v.VersionString(), true
		}
	}
	return "", false
}

// ExtractVersionDigit parses the last dot-separated segment of a version
// string: "Grade.0.1.0.0" selects generation 0, "Tags.0.1.0.1" generation 1.
func ExtractVersionDigit(version string) (int, bool) {
	if version == "" {
		return 0, false
	}
	parts := strings.Split(version, ".")
	return domain.ParseLeadingInt(parts[len(parts)-1])
}

// EnumeratorItemsForVersion returns the enumerators of the first generation
// whose version equals digit, or nil.
func (l *ConfigLoader) EnumeratorItemsForVersion(digit int) []domain.Enumerator {
	doc := l.Document()
	if doc == nil {
		return nil
	}
	for _, set := range doc.Enumerators {
		if set.Version.Valid && set.Version.Value == digit && set.Enumerators != nil {
			return set.Enumerators
		}
	}
	return nil
}

// EnumeratorValues resolves collection -> version -> generation -> enumerator
// and returns its values. Any unresolved step yields an empty slice.
func (l *ConfigLoader) EnumeratorValues(collection, enumerator string) []domain.EnumeratorOption {
	out := []domain.EnumeratorOption{}
	version, ok := l.FindCollectionVersion(collection)
	if !ok || version == "" {
		return out
	}
	digit, ok := ExtractVersionDigit(version)
	if !ok {
		return out
	}
	for _, item := range l.EnumeratorItemsForVersion(digit) {
		if string(item.Name) != enumerator || item.Values == nil {
			continue
		}
		for _, v := range item.Values {
			out = append(out, domain.EnumeratorOption{
				Value:       string(v.Value),
				Description: string(v.Description),
			})
		}
		return out
	}
	return out
}

// DropdownItems maps EnumeratorValues to choice-list entries titled by value.
func (l *ConfigLoader) DropdownItems(collection, enumerator string) []domain.DropdownItem {
	values := l.EnumeratorValues(collection, enumerator)
	items := make([]domain.DropdownItem, 0, len(values))
	for _, v := range values {
		items = append(items, domain.DropdownItem{Title: v.Value, Value: v.Value})
	}
	return items
}

// CheckOption rejects value when the enumerator lists dropdown items and none
// of them matches. An empty value, or an enumerator without items, passes.
func (l *ConfigLoader) CheckOption(collection, enumerator, value string) error {
	if value == "" {
		return nil
	}
	items := l.DropdownItems(collection, enumerator)
	if len(items) == 0 {
		return nil
	}
	for _, it := range items {
		if it.Value == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, value)
}
