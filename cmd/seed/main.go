package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"college-qa/internal/models"
	"college-qa/internal/repository"
	"college-qa/pkg/config"
	"college-qa/pkg/logger"
	"college-qa/pkg/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// seedFile is the knowledge base JSON file to import.
	seedFile string
	// seedForce imports even when the file hash matches the cache.
	seedForce bool
)

// openImporter connects to PostgreSQL and prepares the FAQ schema. The
// returned func releases the connection.
var openImporter = func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (knowledgeImporter, func(), error) {
	db, err := postgres.NewPool(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	faqRepo := repository.NewFAQRepository(db, logger)
	if err := faqRepo.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return faqRepo, db.Close, nil
}

// rootCmd imports a knowledge base file into PostgreSQL.
var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a knowledge base JSON file into PostgreSQL",
	Long: `seed validates a knowledge base JSON file and replaces the FAQ and
contact tables with its contents. Files that have not changed since the last
import are skipped unless --force is given.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := logger.Init(cfg.Logger.Level, cfg.Logger.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()
		appLogger := logger.Get()

		path := seedFile
		if path == "" {
			path = cfg.Knowledge.Path
		}

		ctx := cmd.Context()
		repo, closeRepo, err := openImporter(ctx, cfg, appLogger)
		if err != nil {
			return err
		}
		defer closeRepo()

		appLogger.Info("Starting database seeding...", zap.String("file", path), zap.Bool("force", seedForce))

		cacheFile := filepath.Join(filepath.Dir(path), ".seed_cache.json")
		if err := seedKnowledgeBase(ctx, path, cacheFile, seedForce, repo, appLogger); err != nil {
			return fmt.Errorf("failed to seed knowledge base: %w", err)
		}

		appLogger.Info("Database seeding completed successfully!")
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&seedFile, "file", "f", "", "knowledge base JSON file to import (default is KNOWLEDGE_BASE_PATH)")
	rootCmd.Flags().BoolVar(&seedForce, "force", false, "import even if the file is unchanged since the last run")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// ProcessedFile represents an imported knowledge base file in cache
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	FAQCount    int       `json:"faq_count"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about imported files
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

// loadCache loads the cache of imported files
func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		return cache, nil
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}

	return cache, nil
}

// saveCache saves the cache of imported files
func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

type knowledgeImporter interface {
	ReplaceAll(ctx context.Context, kb *models.KnowledgeBase) error
}

// seedKnowledgeBase validates the JSON file and replaces the database
// contents with it, skipping files whose hash matches the last import.
func seedKnowledgeBase(
	ctx context.Context,
	path string,
	cacheFile string,
	force bool,
	repo knowledgeImporter,
	logger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		return err
	}

	fileHash, err := calculateFileHash(path)
	if err != nil {
		return err
	}

	if cached, ok := cache.ProcessedFiles[path]; ok && cached.FileHash == fileHash && !force {
		logger.Info("Knowledge base unchanged since last import, skipping",
			zap.String("file", path),
			zap.Time("processed_at", cached.ProcessedAt),
		)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read knowledge base: %w", err)
	}

	kb, err := repository.ParseKnowledgeBase(data)
	if err != nil {
		return err
	}

	if err := repo.ReplaceAll(ctx, kb); err != nil {
		return err
	}
	logger.Info("Imported knowledge base",
		zap.Int("faqs", len(kb.FAQs)),
		zap.Int("contact_entries", len(kb.ContactInfo)),
	)

	cache.ProcessedFiles[path] = ProcessedFile{
		FilePath:    path,
		FileHash:    fileHash,
		FAQCount:    len(kb.FAQs),
		ProcessedAt: time.Now(),
	}
	return saveCache(cacheFile, cache)
}
