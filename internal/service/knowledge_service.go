package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"college-qa/internal/models"
	"college-qa/internal/qa"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

var ErrReadOnlyKnowledgeBase = errors.New("knowledge base source is read-only")

// reloadDebounce absorbs the burst of events editors emit for a single save.
const reloadDebounce = 250 * time.Millisecond

type KnowledgeLoader interface {
	Load(ctx context.Context) (*models.KnowledgeBase, error)
}

type FAQWriter interface {
	Create(ctx context.Context, faq *models.FAQEntry) error
}

// KnowledgeSnapshot is one immutable generation of the knowledge base
// together with the index built from it.
type KnowledgeSnapshot struct {
	KB    *models.KnowledgeBase
	Index *qa.Index
}

func newSnapshot(kb *models.KnowledgeBase) *KnowledgeSnapshot {
	if kb == nil {
		kb = &models.KnowledgeBase{ContactInfo: map[string]string{}}
	}
	return &KnowledgeSnapshot{KB: kb, Index: qa.NewIndex(kb.FAQs)}
}

// KnowledgeService owns the current snapshot. Readers never lock; a reload
// publishes a complete new snapshot with a single pointer swap.
type KnowledgeService struct {
	loader  KnowledgeLoader
	writer  FAQWriter
	logger  *zap.Logger
	current atomic.Pointer[KnowledgeSnapshot]
	reload  sync.Mutex
}

// NewKnowledgeService starts with an empty snapshot; call Reload to load.
// writer may be nil, in which case AddFAQ reports ErrReadOnlyKnowledgeBase.
func NewKnowledgeService(loader KnowledgeLoader, writer FAQWriter, logger *zap.Logger) *KnowledgeService {
	s := &KnowledgeService{
		loader: loader,
		writer: writer,
		logger: logger,
	}
	s.current.Store(newSnapshot(nil))
	return s
}

func (s *KnowledgeService) Snapshot() *KnowledgeSnapshot {
	return s.current.Load()
}

// Reload reads the source again. On failure the previous snapshot stays.
func (s *KnowledgeService) Reload(ctx context.Context) error {
	s.reload.Lock()
	defer s.reload.Unlock()

	kb, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	snap := newSnapshot(kb)
	s.current.Store(snap)

	s.logger.Info("Knowledge base snapshot published",
		zap.Int("faqs", snap.KB.Len()),
		zap.Int("contacts", len(snap.KB.ContactInfo)),
	)
	return nil
}

// AddFAQ stores faq through the writer and publishes a fresh snapshot.
func (s *KnowledgeService) AddFAQ(ctx context.Context, faq *models.FAQEntry) error {
	if s.writer == nil {
		return ErrReadOnlyKnowledgeBase
	}
	if err := s.writer.Create(ctx, faq); err != nil {
		return fmt.Errorf("failed to store faq: %w", err)
	}
	return s.Reload(ctx)
}

// Watch reloads whenever the file at path changes, until ctx is done. The
// parent directory is watched so that files replaced by rename are picked up
// by their Create event.
func (s *KnowledgeService) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	s.logger.Info("Watching knowledge base file", zap.String("path", target))

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(ctx); err != nil {
					s.logger.Error("Knowledge base reload failed, keeping previous snapshot", zap.Error(err))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Knowledge base watch error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}
