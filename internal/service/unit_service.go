package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"unitly-be/internal/cache"
	"unitly-be/internal/entities"
	"unitly-be/internal/models"
	"unitly-be/internal/repository"
	"unitly-be/internal/schema"
)

var (
	ErrUnitNotFound = errors.New("unit not found")
	ErrUnitExists   = errors.New("unit with this UCUM code already exists")
)

// ImportError reports which record of a batch failed validation.
type ImportError struct {
	Index int
	Err   *schema.ValidationError
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// UnitService defines the interface for unit-of-measure business logic
type UnitService interface {
	Create(ctx context.Context, req *models.CreateUnitRequest) (*entities.Unit, error)
	Get(ctx context.Context, code string) (*entities.Unit, error)
	List(ctx context.Context, approvedOnly bool) ([]*entities.Unit, error)
	SetApproved(ctx context.Context, code string, approved bool) (*entities.Unit, error)
	Import(ctx context.Context, records []any) (int, error)
}

type unitService struct {
	repo     repository.UnitRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewUnitService creates a unit service. cacheClient may be nil, in which
// case every lookup goes to the database.
func NewUnitService(repo repository.UnitRepository, cacheClient cache.Cache, cacheTTL time.Duration) UnitService {
	return &unitService{
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

func unitCacheKey(code string) string {
	return "unit:" + code
}

// Create stores a new, unapproved unit
func (s *unitService) Create(ctx context.Context, req *models.CreateUnitRequest) (*entities.Unit, error) {
	code := strings.TrimSpace(req.UCUMCode)
	title := strings.TrimSpace(req.Title)
	if code == "" || title == "" {
		return nil, &schema.ValidationError{
			Entity: schema.EntityUnit,
			Fields: blankFields(code, title),
		}
	}

	unit, err := s.repo.Create(ctx, code, title)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrUnitExists
	}
	if err != nil {
		return nil, err
	}

	log.WithField("ucum_code", unit.UCUMCode).Info("unit created")
	return unit, nil
}

func blankFields(code, title string) []schema.FieldError {
	var fields []schema.FieldError
	if code == "" {
		fields = append(fields, schema.FieldError{Field: "ucumCode", Code: schema.CodeEmpty, Message: "must not be empty"})
	}
	if title == "" {
		fields = append(fields, schema.FieldError{Field: "title", Code: schema.CodeEmpty, Message: "must not be empty"})
	}
	return fields
}

// Get looks a unit up by code, going through the cache when one is configured
func (s *unitService) Get(ctx context.Context, code string) (*entities.Unit, error) {
	if unit := s.fromCache(ctx, code); unit != nil {
		return unit, nil
	}

	unit, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, err
	}

	s.store(ctx, unit)
	return unit, nil
}

// fromCache returns nil on a miss. Cached payloads are untrusted and go
// through the unit schema; entries that fail it are dropped.
func (s *unitService) fromCache(ctx context.Context, code string) *entities.Unit {
	if s.cache == nil {
		return nil
	}

	key := unitCacheKey(code)
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.WithError(err).WithField("key", key).Warn("unit cache lookup failed")
		}
		return nil
	}

	data, err := schema.DecodeJSON([]byte(raw))
	if err == nil {
		var unit *entities.Unit
		if unit, err = schema.ValidateUnit(data); err == nil {
			return unit
		}
	}

	log.WithError(err).WithField("key", key).Warn("dropping invalid cached unit")
	if err := s.cache.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to delete cached unit")
	}
	return nil
}

func (s *unitService) store(ctx context.Context, unit *entities.Unit) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, unitCacheKey(unit.UCUMCode), unit, s.cacheTTL); err != nil {
		log.WithError(err).WithField("ucum_code", unit.UCUMCode).Warn("failed to cache unit")
	}
}

func (s *unitService) invalidate(ctx context.Context, codes ...string) {
	if s.cache == nil || len(codes) == 0 {
		return
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = unitCacheKey(code)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.WithError(err).Warn("failed to invalidate cached units")
	}
}

func (s *unitService) List(ctx context.Context, approvedOnly bool) ([]*entities.Unit, error) {
	return s.repo.List(ctx, approvedOnly)
}

// SetApproved flips the approval flag and evicts the cached copy
func (s *unitService) SetApproved(ctx context.Context, code string, approved bool) (*entities.Unit, error) {
	unit, err := s.repo.SetApproved(ctx, code, approved)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, code)
	log.WithFields(log.Fields{"ucum_code": code, "approved": approved}).Info("unit approval changed")
	return unit, nil
}

// Import validates every record before writing any of them. The first
// failing record is reported as an *ImportError.
func (s *unitService) Import(ctx context.Context, records []any) (int, error) {
	units := make([]*entities.Unit, 0, len(records))
	codes := make([]string, 0, len(records))
	for i, record := range records {
		unit, err := schema.ValidateUnit(record)
		if err != nil {
			var verr *schema.ValidationError
			if errors.As(err, &verr) {
				return 0, &ImportError{Index: i, Err: verr}
			}
			return 0, err
		}
		units = append(units, unit)
		codes = append(codes, unit.UCUMCode)
	}
	if len(units) == 0 {
		return 0, nil
	}

	if err := s.repo.Upsert(ctx, units); err != nil {
		return 0, err
	}

	s.invalidate(ctx, codes...)
	log.WithField("count", len(units)).Info("units imported")
	return len(units), nil
}
