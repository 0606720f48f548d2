package parser

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-power-overlay/internal/core/model"
	"github.com/penwyp/go-power-overlay/internal/data/cache"
	"github.com/penwyp/go-power-overlay/internal/util"
)

// Parser loads history files, one JSON record per line.
type Parser struct {
	mu    sync.Mutex
	cache map[string]cachedHistory
	disk  cache.Cache
}

type cachedHistory struct {
	fingerprint string
	history     *model.History
}

// ParseStats reports what happened while reading a file.
type ParseStats struct {
	Lines    int
	Skipped  int
	Unknown  int
	Records  int
	Duration time.Duration
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		cache: make(map[string]cachedHistory),
	}
}

// SetDiskCache makes the parser reuse histories persisted by c across runs.
func (p *Parser) SetDiskCache(c cache.Cache) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disk = c
}

// ParseFile parses the file at path. Results are cached until the file's
// fingerprint changes.
func (p *Parser) ParseFile(path string) (*model.History, error) {
	fingerprint, err := util.CalculateFileFingerprint(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint %s: %w", path, err)
	}

	p.mu.Lock()
	if cached, ok := p.cache[path]; ok && cached.fingerprint == fingerprint {
		p.mu.Unlock()
		util.LogDebug(fmt.Sprintf("Using cached history for %s", path))
		return cached.history, nil
	}
	disk := p.disk
	p.mu.Unlock()

	if disk != nil {
		result := disk.Get(path)
		if result.Found {
			util.LogDebug(fmt.Sprintf("Using disk cached history for %s", path))
			p.remember(path, fingerprint, result.History)
			return result.History, nil
		}
		util.LogDebug(fmt.Sprintf("Disk cache miss for %s: %s", path, result.MissReason))
	}

	history, stats, err := p.parse(path)
	if err != nil {
		return nil, err
	}
	util.LogDebug(fmt.Sprintf("Parsed %s: lines=%d records=%d skipped=%d unknown=%d, duration %v",
		path, stats.Lines, stats.Records, stats.Skipped, stats.Unknown, stats.Duration))

	if disk != nil {
		if err := disk.Set(path, history); err != nil {
			util.LogWarn(fmt.Sprintf("Failed to cache history for %s: %v", path, err))
		}
	}
	p.remember(path, fingerprint, history)

	return history, nil
}

func (p *Parser) remember(path, fingerprint string, history *model.History) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache[path] = cachedHistory{fingerprint: fingerprint, history: history}
}

// Invalidate drops the cached history of path.
func (p *Parser) Invalidate(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cache, path)
}

func (p *Parser) parse(path string) (*model.History, ParseStats, error) {
	var stats ParseStats
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	history := &model.History{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		stats.Lines++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record model.Record
		if err := sonic.Unmarshal(line, &record); err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid JSON line %s:%d - %v", path, stats.Lines, err))
			stats.Skipped++
			continue
		}
		if !addRecord(history, record) {
			stats.Unknown++
			continue
		}
		stats.Records++
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("error scanning %s: %w", path, err)
	}

	sortHistory(history)
	stats.Duration = time.Since(start)
	return history, stats, nil
}

func addRecord(history *model.History, record model.Record) bool {
	end := record.EndTime
	if end < record.StartTime {
		end = record.StartTime
	}

	switch record.Metric {
	case model.MetricPowermonitor:
		history.Powermonitor = append(history.Powermonitor, model.Point{
			StartTime: record.StartTime,
			EndTime:   end,
			Value:     record.Value.Number,
		})
	case model.MetricWakeupReason:
		if record.Value.Text == "" {
			return false
		}
		history.Wakeups = append(history.Wakeups, model.WakeupEvent{
			StartTime: record.StartTime,
			EndTime:   end,
			Reason:    record.Value.Text,
		})
	case model.MetricBatteryLevel:
		history.BatteryLevel = append(history.BatteryLevel, model.LevelPoint{
			Time:  record.StartTime,
			Value: record.Value.Number,
		})
	default:
		return false
	}
	return true
}

func sortHistory(h *model.History) {
	sort.SliceStable(h.Powermonitor, func(i, j int) bool {
		return h.Powermonitor[i].StartTime < h.Powermonitor[j].StartTime
	})
	sort.SliceStable(h.Wakeups, func(i, j int) bool {
		return h.Wakeups[i].StartTime < h.Wakeups[j].StartTime
	})
	sort.SliceStable(h.BatteryLevel, func(i, j int) bool {
		return h.BatteryLevel[i].Time < h.BatteryLevel[j].Time
	})
}
