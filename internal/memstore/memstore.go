// Package memstore is an in-memory implementation of the service store
// contracts. It backs the service tests and honors the same semantics as the
// pgx repositories: typed not-found errors, atomic transfer, and aggregate
// recomputation after every piece mutation.
package memstore

import (
	"context"
	"sort"
	"sync"

	"jewel-backend/internal/apperrors"
	"jewel-backend/internal/models"
	"jewel-backend/internal/timeutil"
)

type Store struct {
	mu sync.Mutex

	counters   map[int]*models.Counter
	containers map[int]*models.Container
	pieces     map[int]*models.Piece
	users      map[int]*models.User

	nextCounterID   int
	nextContainerID int
	nextPieceID     int
	nextUserID      int
}

func New() *Store {
	return &Store{
		counters:        make(map[int]*models.Counter),
		containers:      make(map[int]*models.Container),
		pieces:          make(map[int]*models.Piece),
		users:           make(map[int]*models.User),
		nextCounterID:   1,
		nextContainerID: 1,
		nextPieceID:     1,
		nextUserID:      1,
	}
}

// recompute rederives a container's aggregates from the current piece set.
// Callers must hold s.mu.
func (s *Store) recompute(containerID int) {
	c, ok := s.containers[containerID]
	if !ok {
		return
	}
	pieces := make([]*models.Piece, 0, len(s.pieces))
	for _, p := range s.pieces {
		pieces = append(pieces, p)
	}
	c.ApplyAggregates(pieces)
	c.UpdatedAt = timeutil.Now()
}

// --- CounterStore ---

func (s *Store) CreateCounter(ctx context.Context, c *models.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextCounterID
	s.nextCounterID++
	c.CreatedAt = timeutil.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	s.counters[c.ID] = &cp
	return nil
}

func (s *Store) GetCounter(ctx context.Context, id int) (*models.Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[id]
	if !ok {
		return nil, apperrors.NotFound("counter", id)
	}
	cp := *c
	return &cp, nil
}

func (s *Store) ListCounters(ctx context.Context) ([]*models.Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Counter, 0, len(s.counters))
	for _, c := range s.counters {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateCounter(ctx context.Context, c *models.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.counters[c.ID]; !ok {
		return apperrors.NotFound("counter", c.ID)
	}
	c.UpdatedAt = timeutil.Now()
	cp := *c
	s.counters[c.ID] = &cp
	return nil
}

func (s *Store) DeleteCounter(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.counters[id]; !ok {
		return apperrors.NotFound("counter", id)
	}
	delete(s.counters, id)
	return nil
}

// --- ContainerStore ---

func (s *Store) CreateContainer(ctx context.Context, c *models.Container) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextContainerID
	s.nextContainerID++
	c.CreatedAt = timeutil.Now()
	c.UpdatedAt = c.CreatedAt
	c.GrossWeight = c.FixedWeight
	c.TotalAll = c.FixedWeight
	cp := *c
	s.containers[c.ID] = &cp
	return nil
}

func (s *Store) GetContainer(ctx context.Context, id int) (*models.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.containers[id]
	if !ok {
		return nil, apperrors.NotFound("container", id)
	}
	cp := *c
	return &cp, nil
}

func (s *Store) listContainers(filter func(*models.Container) bool) []*models.Container {
	out := make([]*models.Container, 0, len(s.containers))
	for _, c := range s.containers {
		if filter == nil || filter(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListContainers(ctx context.Context) ([]*models.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listContainers(nil), nil
}

func (s *Store) ListContainersByCounter(ctx context.Context, counterID int) ([]*models.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listContainers(func(c *models.Container) bool {
		return c.CounterID == counterID
	}), nil
}

func (s *Store) UpdateContainer(ctx context.Context, c *models.Container) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.containers[c.ID]; !ok {
		return apperrors.NotFound("container", c.ID)
	}

	cp := *c
	s.containers[c.ID] = &cp

	// Reassignment drags the pieces' denormalized counterId along.
	for _, p := range s.pieces {
		if p.BoxID == c.ID && p.CounterID != c.CounterID {
			p.CounterID = c.CounterID
			p.UpdatedAt = timeutil.Now()
		}
	}
	s.recompute(c.ID)
	return nil
}

func (s *Store) DeleteContainer(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.containers[id]; !ok {
		return apperrors.NotFound("container", id)
	}
	delete(s.containers, id)
	return nil
}

func (s *Store) CountContainersByCounter(ctx context.Context, counterID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, c := range s.containers {
		if c.CounterID == counterID {
			count++
		}
	}
	return count, nil
}

// --- PieceStore ---

func (s *Store) CreatePiece(ctx context.Context, p *models.Piece) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPieceID
	s.nextPieceID++
	p.CreatedAt = timeutil.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.pieces[p.ID] = &cp
	s.recompute(p.BoxID)
	return nil
}

func (s *Store) GetPiece(ctx context.Context, id int) (*models.Piece, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pieces[id]
	if !ok {
		return nil, apperrors.NotFound("piece", id)
	}
	cp := *p
	return &cp, nil
}

func (s *Store) listPieces(filter func(*models.Piece) bool) []*models.Piece {
	out := make([]*models.Piece, 0, len(s.pieces))
	for _, p := range s.pieces {
		if filter == nil || filter(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListPieces(ctx context.Context) ([]*models.Piece, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPieces(nil), nil
}

func (s *Store) ListPiecesByContainer(ctx context.Context, boxID int) ([]*models.Piece, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPieces(func(p *models.Piece) bool { return p.BoxID == boxID }), nil
}

func (s *Store) UpdatePiece(ctx context.Context, p *models.Piece) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.pieces[p.ID]
	if !ok {
		return apperrors.NotFound("piece", p.ID)
	}

	// Location and status are owned by Transfer and Sell.
	stored.Barcode = p.Barcode
	stored.Type = p.Type
	stored.Weight = p.Weight
	stored.VWeight = p.VWeight
	stored.Date = p.Date
	stored.UpdatedAt = timeutil.Now()

	s.recompute(stored.BoxID)
	return nil
}

func (s *Store) DeletePiece(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pieces[id]
	if !ok {
		return apperrors.NotFound("piece", id)
	}
	boxID := p.BoxID
	delete(s.pieces, id)
	s.recompute(boxID)
	return nil
}

// TransferPiece moves a piece and recomputes both containers under one lock,
// so no reader observes the piece counted in both or in neither. The piece's
// counterId comes from the target container's stored state at move time.
func (s *Store) TransferPiece(ctx context.Context, pieceID, targetBoxID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pieces[pieceID]
	if !ok {
		return apperrors.NotFound("piece", pieceID)
	}
	target, ok := s.containers[targetBoxID]
	if !ok {
		return apperrors.NotFound("container", targetBoxID)
	}

	sourceBoxID := p.BoxID
	p.BoxID = targetBoxID
	p.CounterID = target.CounterID
	p.UpdatedAt = timeutil.Now()

	s.recompute(sourceBoxID)
	if sourceBoxID != targetBoxID {
		s.recompute(targetBoxID)
	}
	return nil
}

func (s *Store) SellPiece(ctx context.Context, pieceID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pieces[pieceID]
	if !ok {
		return apperrors.NotFound("piece", pieceID)
	}
	if p.Status == models.PieceStatusSold {
		return apperrors.Conflictf("piece %d is already sold", pieceID)
	}

	p.Status = models.PieceStatusSold
	p.UpdatedAt = timeutil.Now()
	s.recompute(p.BoxID)
	return nil
}

func (s *Store) CountPiecesByContainer(ctx context.Context, boxID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, p := range s.pieces {
		if p.BoxID == boxID {
			count++
		}
	}
	return count, nil
}

// --- UserStore ---

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	if u.Role == "" {
		u.Role = "staff"
	}
	u.IsActive = true
	u.CreatedAt = timeutil.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUser(ctx context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user", 0)
}

func (s *Store) SetUserTOTP(ctx context.Context, userID int, secret string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return apperrors.NotFound("user", userID)
	}
	u.TOTPSecret = secret
	u.TOTPEnabled = enabled
	u.UpdatedAt = timeutil.Now()
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

// --- DashboardStore ---

func (s *Store) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := &models.DashboardSummary{Counters: len(s.counters)}
	var fixedTotal float64
	for _, c := range s.containers {
		if c.Type == models.ContainerTypeTray {
			sum.Trays++
		} else {
			sum.Boxes++
		}
		fixedTotal += c.FixedWeight
	}
	for _, p := range s.pieces {
		sum.Pieces++
		if p.Status == models.PieceStatusAvailable {
			sum.AvailablePieces++
			sum.NetWeight += p.Weight
			sum.VariableWeight += p.VWeight
		} else {
			sum.SoldPieces++
		}
	}
	sum.TotalAll = fixedTotal + sum.NetWeight + sum.VariableWeight
	return sum, nil
}
