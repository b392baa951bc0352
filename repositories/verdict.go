//go:generate go run go.uber.org/mock/mockgen -source=verdict.go -destination=../mocks/mock_verdict_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"

	"jobshield/domain"
)

// maxStoredTextChars bounds persisted job text; previews and trend mining
// never need more.
const maxStoredTextChars = 5000

type IVerdictRepository interface {
	Append(ctx context.Context, record domain.VerdictRecord) error
	RecentFake(ctx context.Context, windowDays, limit int) ([]domain.VerdictRecord, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]domain.VerdictRecord, error)
	DailyFakeCounts(ctx context.Context, sinceDays int) ([]domain.DailyCount, error)
	DailyBreakdown(ctx context.Context, sinceDays int) ([]domain.DailyBreakdown, error)
	CountByLabel(ctx context.Context) (fake int, real int, err error)
	Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)
}

// VerdictRepository persists verdicts in BadgerDB and mirrors their text
// into a Bluge full-text index.
type VerdictRepository struct {
	db    *badger.DB
	index *bluge.Writer
	log   *slog.Logger
}

func NewVerdictRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger) *VerdictRepository {
	return &VerdictRepository{db: db, index: index, log: log}
}

// verdictKey builds "verdict:{label}:{timestamp_padded}:{uuid}":
//  1. The label segment makes filtering by label a prefix scan.
//  2. 19-digit zero padding keeps lexicographic order chronological.
//  3. The UUID disambiguates same-nanosecond verdicts.
func verdictKey(record domain.VerdictRecord) string {
	return fmt.Sprintf("verdict:%s:%019d:%s",
		strings.ToLower(string(record.Label)),
		record.CreatedAt.UnixNano(),
		record.ID,
	)
}

func labelPrefix(label domain.Label) []byte {
	return []byte(fmt.Sprintf("verdict:%s:", strings.ToLower(string(label))))
}

// Append stores the record and indexes its text. The caller only invokes
// this after inference succeeded; persistence never precedes a verdict.
func (r *VerdictRepository) Append(ctx context.Context, record domain.VerdictRecord) error {
	if runes := []rune(record.Text); len(runes) > maxStoredTextChars {
		record.Text = string(runes[:maxStoredTextChars])
	}

	value, err := json.Marshal(record)
	if err != nil {
		return err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(verdictKey(record)), value)
	})
	if err != nil {
		return err
	}

	doc := bluge.NewDocument(record.ID.String()).
		AddField(bluge.NewTextField("text", record.Text).StoreValue()).
		AddField(bluge.NewKeywordField("label", string(record.Label)).StoreValue()).
		AddField(bluge.NewKeywordField("confidence", strconv.FormatFloat(record.Confidence, 'f', 4, 64)).StoreValue())
	if err := r.index.Update(doc.ID(), doc); err != nil {
		// The verdict itself is safe in badger; search is best effort.
		r.log.Error("indexing verdict text failed", "id", record.ID, "error", err)
	}
	return nil
}

// RecentFake returns Fake verdicts within the window, most recent first,
// bounded by limit.
func (r *VerdictRepository) RecentFake(ctx context.Context, windowDays, limit int) ([]domain.VerdictRecord, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)
	return r.scanRecent(labelPrefix(domain.LabelFake), cutoff, limit, nil)
}

// RecentByUser returns the user's most recent verdicts across both labels.
func (r *VerdictRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]domain.VerdictRecord, error) {
	filter := func(rec domain.VerdictRecord) bool { return rec.UserID == userID }
	fake, err := r.scanRecent(labelPrefix(domain.LabelFake), time.Time{}, limit, filter)
	if err != nil {
		return nil, err
	}
	real, err := r.scanRecent(labelPrefix(domain.LabelReal), time.Time{}, limit, filter)
	if err != nil {
		return nil, err
	}
	merged := append(fake, real...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].CreatedAt.After(merged[j].CreatedAt) })
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// scanRecent walks one label prefix in reverse chronological order.
// The padded timestamp in the key lets it stop at the cutoff without
// decoding older values.
func (r *VerdictRepository) scanRecent(prefix []byte, cutoff time.Time, limit int, keep func(domain.VerdictRecord) bool) ([]domain.VerdictRecord, error) {
	var records []domain.VerdictRecord
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) >= limit {
				break
			}
			ts, err := timestampFromKey(it.Item().Key(), prefix)
			if err != nil {
				continue
			}
			if !cutoff.IsZero() && ts.Before(cutoff) {
				break
			}
			err = it.Item().Value(func(value []byte) error {
				var rec domain.VerdictRecord
				if err := json.Unmarshal(value, &rec); err != nil {
					return err
				}
				if keep == nil || keep(rec) {
					records = append(records, rec)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}

func timestampFromKey(key, prefix []byte) (time.Time, error) {
	rest := string(key[len(prefix):])
	segment, _, ok := strings.Cut(rest, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("malformed verdict key %q", key)
	}
	nanos, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, nanos).UTC(), nil
}

// DailyFakeCounts aggregates Fake verdicts per day over the window, oldest
// day first. Days with no fakes are simply absent.
func (r *VerdictRepository) DailyFakeCounts(ctx context.Context, sinceDays int) ([]domain.DailyCount, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -sinceDays)
	records, err := r.scanRecent(labelPrefix(domain.LabelFake), cutoff, 0, nil)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int)
	for _, rec := range records {
		byDay[rec.CreatedAt.UTC().Format("2006-01-02")]++
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	counts := make([]domain.DailyCount, 0, len(days))
	for _, day := range days {
		counts = append(counts, domain.DailyCount{Date: day, Count: byDay[day]})
	}
	return counts, nil
}

// DailyBreakdown aggregates both labels per day over the window.
func (r *VerdictRepository) DailyBreakdown(ctx context.Context, sinceDays int) ([]domain.DailyBreakdown, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -sinceDays)
	byDay := make(map[string]*domain.DailyBreakdown)

	for _, label := range []domain.Label{domain.LabelFake, domain.LabelReal} {
		records, err := r.scanRecent(labelPrefix(label), cutoff, 0, nil)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			day := rec.CreatedAt.UTC().Format("2006-01-02")
			entry, ok := byDay[day]
			if !ok {
				entry = &domain.DailyBreakdown{Date: day}
				byDay[day] = entry
			}
			entry.Total++
			if label == domain.LabelFake {
				entry.Fake++
			} else {
				entry.Real++
			}
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	breakdown := make([]domain.DailyBreakdown, 0, len(days))
	for _, day := range days {
		breakdown = append(breakdown, *byDay[day])
	}
	return breakdown, nil
}

// CountByLabel counts all stored verdicts per label with a keys-only scan.
func (r *VerdictRepository) CountByLabel(ctx context.Context) (fake int, real int, err error) {
	err = r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for _, label := range []domain.Label{domain.LabelFake, domain.LabelReal} {
			prefix := labelPrefix(label)
			count := 0
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				count++
			}
			if label == domain.LabelFake {
				fake = count
			} else {
				real = count
			}
		}
		return nil
	})
	return fake, real, err
}

// Search runs a full-text match query over indexed verdict text.
func (r *VerdictRepository) Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	reader, err := r.index.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	match := bluge.NewMatchQuery(query).SetField("text")
	request := bluge.NewTopNSearch(limit, match)
	iter, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var hits []domain.SearchHit
	for {
		next, err := iter.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		var hit domain.SearchHit
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.ID = string(value)
			case "label":
				hit.Label = domain.Label(value)
			case "text":
				hit.Preview = preview(string(value), 120)
			case "confidence":
				if c, err := strconv.ParseFloat(string(value), 64); err == nil {
					hit.Confidence = c
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
