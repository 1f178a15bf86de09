package word_review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/domain/drill"
	"github.com/phrazzld/lingo-api/internal/lock"
	"github.com/phrazzld/lingo-api/internal/platform/logger"
	"github.com/phrazzld/lingo-api/internal/store"
	"github.com/sethvargo/go-retry"
)

// Config tunes the service.
type Config struct {
	// Scheduler configures word placement.
	Scheduler drill.Params
	// GuessRetries is how many times a write that lost the version race is
	// retried.
	GuessRetries int
	// RetryBase is the first backoff delay; it doubles on every retry.
	RetryBase time.Duration
}

// Verify interface compliance at compile time
var _ WordReviewService = (*wordReviewServiceImpl)(nil)

type wordReviewServiceImpl struct {
	uow       UnitOfWork
	locker    lock.Locker
	scheduler *drill.Scheduler
	retries   int
	retryBase time.Duration
	logger    *slog.Logger
}

// NewWordReviewService creates a WordReviewService. A nil locker falls back
// to an in-process lock.KeyedMutex.
func NewWordReviewService(
	uow UnitOfWork,
	locker lock.Locker,
	cfg Config,
	logger *slog.Logger,
) WordReviewService {
	if uow == nil {
		panic("uow cannot be nil")
	}
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GuessRetries < 0 {
		cfg.GuessRetries = 0
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 10 * time.Millisecond
	}

	return &wordReviewServiceImpl{
		uow:       uow,
		locker:    locker,
		scheduler: drill.NewScheduler(cfg.Scheduler),
		retries:   cfg.GuessRetries,
		retryBase: cfg.RetryBase,
		logger:    logger.With(slog.String("component", "word_review_service")),
	}
}

// PeekNext implements WordReviewService.PeekNext
func (s *wordReviewServiceImpl) PeekNext(ctx context.Context, userID uuid.UUID) (*NextWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var next *NextWord
	err := s.uow.Run(ctx, func(ctx context.Context, repos Repositories) error {
		lang, err := s.loadLanguage(ctx, repos, userID)
		if err != nil {
			return err
		}
		if lang.Head == nil {
			return drill.ErrEmptyChain
		}

		head, err := repos.Words.GetByID(ctx, *lang.Head)
		if err != nil {
			if errors.Is(err, store.ErrWordNotFound) {
				return fmt.Errorf("%w: head %s does not exist", drill.ErrBrokenChain, *lang.Head)
			}
			return fmt.Errorf("failed to get head word: %w", err)
		}

		next = &NextWord{
			Word:           head.Original,
			TotalScore:     lang.TotalScore,
			CorrectCount:   head.CorrectCount,
			IncorrectCount: head.IncorrectCount,
		}
		return nil
	})
	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		log.Error("failed to peek next word",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("peek_next", "failed to load next word", err)
	}

	return next, nil
}

// SubmitGuess implements WordReviewService.SubmitGuess
func (s *wordReviewServiceImpl) SubmitGuess(
	ctx context.Context,
	userID uuid.UUID,
	guess string,
) (*GuessResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if guess == "" {
		return nil, ErrMissingGuess
	}

	var result *GuessResult
	err := s.mutate(ctx, userID, func(ctx context.Context, repos Repositories, lang *domain.Language) error {
		chain, before, err := s.loadChain(ctx, repos, lang)
		if err != nil {
			return err
		}

		correct := drill.MatchesTranslation(chain.Head(), guess)
		outcome, err := s.scheduler.Advance(chain, correct)
		if err != nil {
			return err
		}

		if err := repos.Words.UpdateMany(ctx, changedWords(before, drill.Flatten(chain))); err != nil {
			return fmt.Errorf("failed to update words: %w", err)
		}

		lang.Head = chain.HeadID()
		lang.TotalScore += outcome.ScoreDelta
		if err := repos.Languages.UpdateProgress(ctx, lang); err != nil {
			return err
		}

		result = &GuessResult{
			NextWord:           outcome.Head.Original,
			TotalScore:         lang.TotalScore,
			WordCorrectCount:   outcome.Head.CorrectCount,
			WordIncorrectCount: outcome.Head.IncorrectCount,
			Answer:             outcome.Moved.Translation,
			IsCorrect:          correct,
		}
		return nil
	})
	if err != nil {
		if isExpected(err) {
			log.Debug("guess rejected",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}
		log.Error("failed to submit guess",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("submit_guess", "failed to submit guess", err)
	}

	log.Debug("guess processed",
		slog.String("user_id", userID.String()),
		slog.Bool("correct", result.IsCorrect),
		slog.Int("total_score", result.TotalScore))
	return result, nil
}

// GetLanguage implements WordReviewService.GetLanguage
func (s *wordReviewServiceImpl) GetLanguage(ctx context.Context, userID uuid.UUID) (*LanguageOverview, error) {
	var overview *LanguageOverview
	err := s.uow.Run(ctx, func(ctx context.Context, repos Repositories) error {
		lang, err := s.loadLanguage(ctx, repos, userID)
		if err != nil {
			return err
		}
		chain, _, err := s.loadChain(ctx, repos, lang)
		if err != nil {
			return err
		}
		overview = &LanguageOverview{Language: lang, Words: chain.Words()}
		return nil
	})
	if err != nil {
		if isExpected(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get language",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("get_language", "failed to load language", err)
	}
	return overview, nil
}

// AddWords implements WordReviewService.AddWords
func (s *wordReviewServiceImpl) AddWords(ctx context.Context, userID uuid.UUID, pairs []WordPair) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(pairs) == 0 {
		return 0, ErrNoWordPairs
	}
	for i, p := range pairs {
		// Language id is not known yet; validate the text with a placeholder.
		if _, err := domain.NewWord(uuid.New(), p.Original, p.Translation); err != nil {
			return 0, domain.NewValidationError(fmt.Sprintf("pairs[%d]", i), err.Error(), err)
		}
	}

	err := s.mutate(ctx, userID, func(ctx context.Context, repos Repositories, lang *domain.Language) error {
		chain, before, err := s.loadChain(ctx, repos, lang)
		if err != nil {
			return err
		}

		fresh := make([]*domain.Word, 0, len(pairs))
		for _, p := range pairs {
			w, err := domain.NewWord(lang.ID, p.Original, p.Translation)
			if err != nil {
				return err
			}
			fresh = append(fresh, w)
		}
		if err := drill.Append(chain, fresh...); err != nil {
			return err
		}

		flat := drill.Flatten(chain)
		var created []*domain.Word
		for _, w := range flat {
			if _, existed := before[w.ID]; !existed {
				created = append(created, w)
			}
		}
		if err := repos.Words.CreateMultiple(ctx, created); err != nil {
			return fmt.Errorf("failed to create words: %w", err)
		}
		if err := repos.Words.UpdateMany(ctx, changedWords(before, flat)); err != nil {
			return fmt.Errorf("failed to relink words: %w", err)
		}

		lang.Head = chain.HeadID()
		return repos.Languages.UpdateProgress(ctx, lang)
	})
	if err != nil {
		if isExpected(err) {
			return 0, err
		}
		log.Error("failed to add words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, NewServiceError("add_words", "failed to add words", err)
	}

	log.Info("words added",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(pairs)))
	return len(pairs), nil
}

// mutate runs fn under the language lock inside a transaction, retrying
// with exponential backoff when the language's version moved underneath it.
// fn receives the language as read inside the current attempt's transaction.
func (s *wordReviewServiceImpl) mutate(
	ctx context.Context,
	userID uuid.UUID,
	fn func(ctx context.Context, repos Repositories, lang *domain.Language) error,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var languageID uuid.UUID
	if err := s.uow.Run(ctx, func(ctx context.Context, repos Repositories) error {
		lang, err := s.loadLanguage(ctx, repos, userID)
		if err != nil {
			return err
		}
		languageID = lang.ID
		return nil
	}); err != nil {
		return err
	}

	release, err := s.locker.Acquire(ctx, "language:"+languageID.String())
	if err != nil {
		return fmt.Errorf("failed to lock language: %w", err)
	}
	defer release()

	backoff := retry.WithMaxRetries(uint64(s.retries), retry.NewExponential(s.retryBase))
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := s.uow.Run(ctx, func(ctx context.Context, repos Repositories) error {
			lang, err := s.loadLanguage(ctx, repos, userID)
			if err != nil {
				return err
			}
			return fn(ctx, repos, lang)
		})
		if errors.Is(err, store.ErrConflict) {
			log.Info("language version conflict, retrying",
				slog.String("language_id", languageID.String()),
				slog.Int("attempt", attempt))
			return retry.RetryableError(err)
		}
		return err
	})
	if errors.Is(err, store.ErrConflict) {
		return fmt.Errorf("%w after %d attempts", ErrGuessConflict, attempt)
	}
	return err
}

func (s *wordReviewServiceImpl) loadLanguage(
	ctx context.Context,
	repos Repositories,
	userID uuid.UUID,
) (*domain.Language, error) {
	lang, err := repos.Languages.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrLanguageNotFound) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return lang, nil
}

// loadChain builds the language's chain and returns a snapshot of the words
// as they were read, keyed by id.
func (s *wordReviewServiceImpl) loadChain(
	ctx context.Context,
	repos Repositories,
	lang *domain.Language,
) (*drill.Chain, map[uuid.UUID]domain.Word, error) {
	words, err := repos.Words.ListByLanguage(ctx, lang.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list words: %w", err)
	}

	chain, err := drill.BuildChain(words, lang.Head)
	if err != nil {
		return nil, nil, err
	}

	before := make(map[uuid.UUID]domain.Word, len(words))
	for _, w := range words {
		before[w.ID] = *w.Clone()
	}
	return chain, before, nil
}

// changedWords returns the words of after that exist in before and differ
// from their snapshot in link, counters or strength.
func changedWords(before map[uuid.UUID]domain.Word, after []*domain.Word) []*domain.Word {
	var changed []*domain.Word
	for _, w := range after {
		old, ok := before[w.ID]
		if !ok {
			continue
		}
		if old.NextID() != w.NextID() ||
			old.CorrectCount != w.CorrectCount ||
			old.IncorrectCount != w.IncorrectCount ||
			old.Strength != w.Strength {
			changed = append(changed, w)
		}
	}
	return changed
}

// isExpected reports whether err is a domain outcome the caller handles,
// as opposed to an infrastructure failure.
func isExpected(err error) bool {
	var validationErr *domain.ValidationError
	return errors.Is(err, ErrLanguageNotFound) ||
		errors.Is(err, ErrMissingGuess) ||
		errors.Is(err, ErrGuessConflict) ||
		errors.Is(err, ErrNoWordPairs) ||
		errors.Is(err, drill.ErrEmptyChain) ||
		errors.Is(err, drill.ErrChainExhausted) ||
		errors.As(err, &validationErr)
}
