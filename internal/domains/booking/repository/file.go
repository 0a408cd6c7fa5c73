package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/booking/model"
	"clinicbook/internal/domains/booking/model/dto"
	"clinicbook/shared/constant"
	"clinicbook/shared/logger"
	"clinicbook/shared/timezone"
)

// bookingsDocument is the on-disk shape of the flat-file backend: one JSON
// object holding the whole collection, rewritten in full on every mutation.
type bookingsDocument struct {
	Bookings []model.Booking `json:"bookings"`
}

type fileRepository struct {
	path string
	otel otel.Otel

	// mu serializes every read-modify-write cycle, which makes the
	// check-and-insert in Insert atomic within this process.
	mu sync.Mutex
}

// NewFile builds the flat-file backend rooted at path.
func NewFile(path string, otl otel.Otel) Booking {
	return &fileRepository{
		path: path,
		otel: otl,
	}
}

func (repo *fileRepository) List(ctx context.Context) ([]model.Booking, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.List")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.load()
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	bookings := append([]model.Booking(nil), doc.Bookings...)

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	return bookings, nil
}

func (repo *fileRepository) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListByDate")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.load()
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	var bookings []model.Booking

	for _, booking := range doc.Bookings {
		if booking.SlotDate == date {
			bookings = append(bookings, booking)
		}
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].SlotTime < bookings[j].SlotTime
	})

	return bookings, nil
}

func (repo *fileRepository) Exists(ctx context.Context, date, timeLabel string) (bool, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Exists")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.load()
	if err != nil {
		scope.TraceError(err)

		return false, err
	}

	return slotTaken(doc.Bookings, date, timeLabel), nil
}

func (repo *fileRepository) Insert(ctx context.Context, booking model.Booking) error {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Insert")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.load()
	if err != nil {
		scope.TraceError(err)

		return err
	}

	if slotTaken(doc.Bookings, booking.SlotDate, booking.SlotTime) {
		return ErrSlotTaken
	}

	doc.Bookings = append(doc.Bookings, booking)

	if err := repo.save(doc); err != nil {
		scope.TraceError(err)

		return err
	}

	return nil
}

func (repo *fileRepository) Delete(ctx context.Context, id string) (bool, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Delete")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.load()
	if err != nil {
		scope.TraceError(err)

		return false, err
	}

	kept := doc.Bookings[:0]
	found := false

	for _, booking := range doc.Bookings {
		if booking.ID == id {
			found = true

			continue
		}

		kept = append(kept, booking)
	}

	if !found {
		return false, nil
	}

	doc.Bookings = kept

	if err := repo.save(doc); err != nil {
		scope.TraceError(err)

		return false, err
	}

	return true, nil
}

func (repo *fileRepository) Search(ctx context.Context, req dto.SearchBookingsRequest) ([]model.Booking, int, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Search")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.load()
	if err != nil {
		scope.TraceError(err)

		return nil, 0, err
	}

	var matched []model.Booking

	for _, booking := range doc.Bookings {
		if req.Date != "" && booking.SlotDate != req.Date {
			continue
		}

		if req.Status != "" && booking.Status != req.Status {
			continue
		}

		if req.Text != "" && !matchesText(booking, req.Text) {
			continue
		}

		matched = append(matched, booking)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	if req.Params.Page > 0 && req.Params.Limit > 0 {
		offset := (req.Params.Page - 1) * req.Params.Limit
		if offset >= total {
			return nil, total, nil
		}

		end := min(offset+req.Params.Limit, total)
		matched = matched[offset:end]
	}

	return matched, total, nil
}

func (repo *fileRepository) Stats(ctx context.Context) (model.Stats, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Stats")
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	stats := model.Stats{ByStatus: map[string]int{}}

	doc, err := repo.load()
	if err != nil {
		scope.TraceError(err)

		return stats, err
	}

	today := timezone.Now().Format(constant.DateLayout)
	dates := map[string]bool{}

	for _, booking := range doc.Bookings {
		stats.Total++
		stats.ByStatus[booking.Status]++
		dates[booking.SlotDate] = true

		// ISO dates compare correctly as strings.
		if booking.SlotDate >= today {
			stats.Upcoming++
		}
	}

	stats.Dates = len(dates)

	return stats, nil
}

func (repo *fileRepository) load() (bookingsDocument, error) {
	doc := bookingsDocument{}

	payload, err := os.ReadFile(repo.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}

		logger.ErrorWithStack(err)

		return doc, fmt.Errorf("failed to read bookings document: %w", err)
	}

	if len(payload) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(payload, &doc); err != nil {
		logger.ErrorWithStack(err)

		return doc, fmt.Errorf("failed to decode bookings document: %w", err)
	}

	return doc, nil
}

// save rewrites the whole document through a temp file and rename so a crash
// mid-write never leaves a truncated collection behind.
func (repo *fileRepository) save(doc bookingsDocument) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to encode bookings document: %w", err)
	}

	dir := filepath.Dir(repo.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to create bookings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bookings-*.json")
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to create temp bookings document: %w", err)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to write bookings document: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to close bookings document: %w", err)
	}

	if err := os.Rename(tmp.Name(), repo.path); err != nil {
		os.Remove(tmp.Name())
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to replace bookings document: %w", err)
	}

	return nil
}

func slotTaken(bookings []model.Booking, date, timeLabel string) bool {
	for _, booking := range bookings {
		if booking.SlotDate == date && booking.SlotTime == timeLabel {
			return true
		}
	}

	return false
}

func matchesText(booking model.Booking, text string) bool {
	needle := strings.ToLower(text)

	return strings.Contains(strings.ToLower(booking.FirstName), needle) ||
		strings.Contains(strings.ToLower(booking.LastName), needle) ||
		strings.Contains(strings.ToLower(booking.Email), needle)
}
