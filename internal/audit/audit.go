// Package audit periodically verifies that every language's persisted word
// queue still forms a valid chain.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/domain/drill"
	"github.com/phrazzld/lingo-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// LanguageReader is the part of store.LanguageStore the auditor reads.
type LanguageReader interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Language, error)
}

// WordLister is the part of store.WordStore the auditor reads.
type WordLister interface {
	ListByLanguage(ctx context.Context, languageID uuid.UUID) ([]*domain.Word, error)
}

// Finding is one language whose chain failed to build.
type Finding struct {
	LanguageID uuid.UUID
	Err        error
}

// Report summarizes one audit pass.
type Report struct {
	Checked int
	Broken  []Finding
}

// Auditor checks chains with drill.BuildChain.
type Auditor struct {
	languages   LanguageReader
	words       WordLister
	concurrency int
	logger      *slog.Logger
}

// NewAuditor creates an Auditor checking at most concurrency languages at once.
func NewAuditor(languages LanguageReader, words WordLister, concurrency int, logger *slog.Logger) *Auditor {
	if languages == nil || words == nil {
		panic("audit: stores cannot be nil")
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		languages:   languages,
		words:       words,
		concurrency: concurrency,
		logger:      logger.With(slog.String("component", "chain_audit")),
	}
}

// RunOnce audits every language. Broken chains are collected in the report;
// any other failure aborts the pass.
func (a *Auditor) RunOnce(ctx context.Context) (*Report, error) {
	ids, err := a.languages.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}

	var (
		mu     sync.Mutex
		report = &Report{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			checked, err := a.check(gctx, id)
			if err != nil {
				var broken *brokenError
				if !errors.As(err, &broken) {
					return err
				}
				a.logger.Warn("broken word chain",
					slog.String("language_id", id.String()),
					slog.String("error", err.Error()))
				mu.Lock()
				report.Broken = append(report.Broken, Finding{LanguageID: id, Err: broken.err})
				mu.Unlock()
			}
			if checked {
				mu.Lock()
				report.Checked++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Info("chain audit finished",
		slog.Int("checked", report.Checked),
		slog.Int("broken", len(report.Broken)))
	return report, nil
}

type brokenError struct{ err error }

func (e *brokenError) Error() string { return e.err.Error() }

// check reports whether the language still existed and was checked.
func (a *Auditor) check(ctx context.Context, id uuid.UUID) (bool, error) {
	lang, err := a.languages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrLanguageNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get language %s: %w", id, err)
	}

	words, err := a.words.ListByLanguage(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to list words of %s: %w", id, err)
	}

	if _, err := drill.BuildChain(words, lang.Head); err != nil {
		if errors.Is(err, drill.ErrBrokenChain) {
			return true, &brokenError{err: err}
		}
		return false, err
	}
	return true, nil
}
