// Package driver orchestrates checks over files and directories:
// listing, parallel scan+analyze, verdict caching, timings.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"strlint/internal/analyze"
	"strlint/internal/diag"
	"strlint/internal/grapheme"
	"strlint/internal/lexer"
	"strlint/internal/observ"
	"strlint/internal/policy"
	"strlint/internal/source"
)

// CheckOptions настраивает один прогон CheckPaths.
type CheckOptions struct {
	// Extensions limits which files a directory walk picks up
	// (".go", ".rs", ...); empty means every regular file.
	Extensions []string
	// MaxDiagnostics bounds each file's bag.
	MaxDiagnostics int
	// Jobs is the worker limit; <=0 means GOMAXPROCS.
	Jobs int
	// PreferEscapes also advises escapes for conforming literals.
	PreferEscapes bool
	// Cache, when non-nil, skips re-analysis of files whose content
	// hash already has a conforming verdict.
	Cache *DiskCache
	// Timer, when non-nil, records list/load/check phases.
	Timer *observ.Timer
	// Progress receives per-file events; nil disables them.
	Progress ProgressSink
}

// FileResult содержит результат проверки одного файла
type FileResult struct {
	Path       string        // Путь к файлу как его указал пользователь
	FileID     source.FileID // ID файла в FileSet (0 при ошибке загрузки)
	Literals   int           // Сколько строковых литералов найдено
	Conforming bool          // Все литералы конформны
	FromCache  bool          // Вердикт взят из кэша, анализ пропущен
	Bag        *diag.Bag     // Диагностики
}

// ListFiles разворачивает пути (файл или директория) в отсортированный
// список файлов, отфильтрованный по расширениям.
func ListFiles(paths []string, extensions []string) ([]string, error) {
	var files []string

	matches := func(path string) bool {
		if len(extensions) == 0 {
			return true
		}
		for _, ext := range extensions {
			if strings.HasSuffix(path, ext) {
				return true
			}
		}
		return false
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			// Явно указанный файл не фильтруем по расширению
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckPaths проверяет все файлы по указанным путям параллельно.
func CheckPaths(ctx context.Context, paths []string, opts CheckOptions) (*source.FileSet, []FileResult, error) {
	progress := opts.Progress
	if progress == nil {
		progress = nopSink{}
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}

	var listPhase int
	if opts.Timer != nil {
		listPhase = opts.Timer.Begin("list")
	}
	files, err := ListFiles(paths, opts.Extensions)
	if opts.Timer != nil {
		opts.Timer.End(listPhase, pluralFiles(len(files)))
	}
	if err != nil {
		return nil, nil, err
	}

	baseDir := "."
	if len(paths) == 1 {
		if info, statErr := os.Stat(paths[0]); statErr == nil && info.IsDir() {
			baseDir = paths[0]
		}
	}
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагружаем все файлы: FileSet не потокобезопасен на запись
	var loadPhase int
	if opts.Timer != nil {
		loadPhase = opts.Timer.Begin("load")
	}
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		progress.OnEvent(Event{File: path, Stage: StageScan, Status: StatusQueued})
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			continue
		}
		fileIDs[path] = fileID
	}
	if opts.Timer != nil {
		opts.Timer.End(loadPhase, "")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	var checkPhase int
	if opts.Timer != nil {
		checkPhase = opts.Timer.Begin("check")
	}

	seg := grapheme.UAX29{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			bag := diag.NewBag(opts.MaxDiagnostics)

			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				progress.OnEvent(Event{File: path, Stage: StageScan, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			// Кэш: конформный файл с тем же содержимым и режимом
			// можно не переанализировать.
			if opts.Cache != nil {
				var payload DiskPayload
				if hit, _ := opts.Cache.Get(file.Hash, &payload); hit &&
					payload.Conforming && payload.PreferEscapes == opts.PreferEscapes {
					results[i] = FileResult{
						Path:       path,
						FileID:     fileID,
						Literals:   payload.Literals,
						Conforming: true,
						FromCache:  true,
						Bag:        bag,
					}
					progress.OnEvent(Event{File: path, Stage: StageCache, Status: StatusDone, Elapsed: time.Since(started)})
					return nil
				}
			}

			progress.OnEvent(Event{File: path, Stage: StageScan, Status: StatusWorking})
			literals := lexer.ScanAll(file, lexer.Options{
				Reporter: diag.BagReporter{Bag: bag},
			})

			progress.OnEvent(Event{File: path, Stage: StageAnalyze, Status: StatusWorking})
			conforming := !bag.HasErrors()
			for _, lit := range literals {
				res, diags, analyzeErr := analyze.Literal(lit, seg, policy.ReportOpts{
					Quote:         '"',
					PreferEscapes: opts.PreferEscapes,
				})
				if analyzeErr != nil {
					bag.Add(diag.NewError(diag.SegBadBoundaries, lit.Span, analyzeErr.Error()))
					conforming = false
					continue
				}
				if !res.Verdict.Conforms() {
					conforming = false
				}
				for _, d := range diags {
					bag.Add(d)
				}
			}
			bag.Sort()

			results[i] = FileResult{
				Path:       path,
				FileID:     fileID,
				Literals:   len(literals),
				Conforming: conforming,
				Bag:        bag,
			}

			if opts.Cache != nil && conforming {
				// Ошибку записи кэша глотаем: вердикт уже есть
				_ = opts.Cache.Put(file.Hash, &DiskPayload{
					Schema:        diskCacheSchemaVersion,
					Path:          path,
					ContentHash:   file.Hash,
					PreferEscapes: opts.PreferEscapes,
					Literals:      len(literals),
					Conforming:    true,
				})
			}

			progress.OnEvent(Event{File: path, Stage: StageAnalyze, Status: StatusDone, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}

	if opts.Timer != nil {
		opts.Timer.End(checkPhase, "")
	}
	return fileSet, results, nil
}

// MergeBags собирает диагностики всех файлов в один отсортированный Bag.
func MergeBags(results []FileResult, maxDiagnostics int) *diag.Bag {
	total := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.Bag != nil {
			total.Merge(r.Bag)
		}
	}
	total.Sort()
	return total
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
