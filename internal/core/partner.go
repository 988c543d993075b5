package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/paulmach/orb"

	"github.com/edvin/partners/internal/geo"
	"github.com/edvin/partners/internal/model"
)

var (
	ErrNotFound          = errors.New("partner not found")
	ErrDuplicateID       = errors.New("id already exists")
	ErrDuplicateDocument = errors.New("document must be unique")
	ErrInvalidGeometry   = errors.New("invalid partner geometry")
	ErrNoCoverage        = errors.New("no partner covers this location")
)

// PartnerService manages partner records in the core database. Geometry
// lives in the rows as GeoJSON; the bounding-box columns narrow the nearest
// search before the exact containment check runs in Go.
type PartnerService struct {
	db DB
}

func NewPartnerService(db DB) *PartnerService {
	return &PartnerService{db: db}
}

const partnerColumns = `id, trading_name, owner_name, document, coverage_area, address, created_at, updated_at`

func scanPartner(row interface{ Scan(dest ...any) error }) (model.Partner, error) {
	var p model.Partner
	var id string
	err := row.Scan(&id, &p.TradingName, &p.OwnerName, &p.Document,
		&p.CoverageArea, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.ID = model.PartnerID(id)
	return p, nil
}

// Create validates the partner's geometry and inserts it. An empty id gets a
// generated UUID. Both the id and the document must be unused.
func (s *PartnerService) Create(ctx context.Context, p *model.Partner) error {
	coverage, err := geo.ParseCoverage(p.CoverageArea)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	if _, err := geo.ParsePoint(p.Address); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	if p.ID == "" {
		p.ID = model.PartnerID(uuid.NewString())
	}

	var exists bool
	err = s.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM partners WHERE id = $1)", p.ID.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check partner id %s: %w", p.ID, err)
	}
	if exists {
		return ErrDuplicateID
	}

	err = s.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM partners WHERE document = $1)", p.Document).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check document %s: %w", p.Document, err)
	}
	if exists {
		return ErrDuplicateDocument
	}

	bound := geo.Bound(coverage)
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err = s.db.Exec(ctx,
		`INSERT INTO partners (id, trading_name, owner_name, document, coverage_area, address,
		                       min_lng, min_lat, max_lng, max_lat, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID.String(), p.TradingName, p.OwnerName, p.Document, p.CoverageArea, p.Address,
		bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1], p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		// Concurrent creates can pass both EXISTS checks; the unique
		// constraints are the backstop and keep the duplicate semantics.
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("create partner %s: %w", p.ID, err)
	}
	return nil
}

// duplicateError maps a unique-violation from the partners table to the
// matching duplicate sentinel, or returns nil for any other error.
func duplicateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if pgErr.ConstraintName == "partners_document_key" {
		return ErrDuplicateDocument
	}
	return ErrDuplicateID
}

func (s *PartnerService) GetByID(ctx context.Context, id string) (*model.Partner, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+partnerColumns+" FROM partners WHERE id = $1", id)
	p, err := scanPartner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get partner %s: %w", id, err)
	}
	return &p, nil
}

// Nearest returns the partner whose coverage area contains the point and
// whose address is closest to it. Candidates come from the bounding-box
// prefilter; rows with unparsable geometry are skipped.
func (s *PartnerService) Nearest(ctx context.Context, lng, lat float64) (*model.Partner, error) {
	if err := geo.ValidateCoordinates(lng, lat); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+partnerColumns+` FROM partners
		 WHERE min_lng <= $1 AND max_lng >= $1 AND min_lat <= $2 AND max_lat >= $2`,
		lng, lat)
	if err != nil {
		return nil, fmt.Errorf("query partners near (%v, %v): %w", lng, lat, err)
	}
	defer rows.Close()

	point := orb.Point{lng, lat}
	var best *model.Partner
	bestDist := math.MaxFloat64

	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}

		coverage, err := geo.ParseCoverage(p.CoverageArea)
		if err != nil || !geo.Covers(coverage, point) {
			continue
		}
		address, err := geo.ParsePoint(p.Address)
		if err != nil {
			continue
		}

		if d := geo.Distance(point, address); d < bestDist {
			bestDist = d
			candidate := p
			best = &candidate
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate partners: %w", err)
	}

	if best == nil {
		return nil, ErrNoCoverage
	}
	return best, nil
}

// List returns all partners ordered by id. Used by the export path.
func (s *PartnerService) List(ctx context.Context) ([]model.Partner, error) {
	rows, err := s.db.Query(ctx, "SELECT "+partnerColumns+" FROM partners ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	var partners []model.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		partners = append(partners, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate partners: %w", err)
	}
	return partners, nil
}

func (s *PartnerService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM partners").Scan(&n); err != nil {
		return 0, fmt.Errorf("count partners: %w", err)
	}
	return n, nil
}
